// Package resilience guards the slow or remote edges of tablekit.
//
//   - Retry re-sends mail when the provider answers with a transient error.
//   - CircuitBreaker stops hammering a provider that keeps failing.
//   - RateLimiter paces sends to the provider's published request rate.
//   - Bulkhead caps how many headless browser exports run at once.
//
// Combined the way the mail client uses them:
//
//	err := rl.Wait(ctx)
//	resp, err := resilience.Retry(ctx, resilience.MailRetryConfig(), func() (*Response, error) {
//	    var resp *Response
//	    err := cb.Execute(func() (err error) { resp, err = send(ctx); return err })
//	    return resp, err
//	})
package resilience
