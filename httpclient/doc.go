// Package httpclient is the outbound HTTP client behind tablekit's mail
// delivery. It adds bearer or API key auth, JSON bodies, status code
// classification and the resilience guards (rate limit, circuit breaker,
// retry) to net/http.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL:        "https://api.resend.com",
//	    Auth:           httpclient.BearerAuth(apiKey),
//	    Retry:          httpclient.DefaultRetryConfig(),
//	    CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("resend"),
//	})
//	resp, err := httpclient.Post[sendResponse](client, ctx, "/emails", payload)
package httpclient
