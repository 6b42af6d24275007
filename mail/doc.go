// Package mail sends transactional email through the Resend HTTP API.
//
// The client is built on httpclient, so requests carry bearer auth, are
// paced by a token bucket and retried when the failure is retryable.
//
//	client, err := mail.NewClient(mail.Config{APIKey: key})
//	res, err := client.Send(ctx, mail.SendParams{
//	    From:    "me@example.com",
//	    To:      []string{"you@example.com"},
//	    Subject: "hello",
//	    HTML:    "<p>hi</p>",
//	})
//
// ParamsFromForm turns the values of a submitted widget form into
// SendParams.
package mail
