// Package testutil provides test components with a start, stop and reset
// lifecycle, and helpers that tie them to testing.T.
//
//	func TestSend(t *testing.T) {
//	    resend := testutil.NewResend()
//	    testutil.T(t).Setup(resend)
//	    client, _ := mail.NewClient(mail.Config{BaseURL: resend.URL(), APIKey: "re_test"})
//	    ...
//	    msgs := resend.Messages()
//	}
package testutil
