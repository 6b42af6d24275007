package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// TypedResponse wraps a response with a decoded body of type T.
type TypedResponse[T any] struct {
	StatusCode int
	Headers    map[string]string
	Data       T
}

// Post sends body as JSON and decodes the JSON response into T.
func Post[T any](c *Client, ctx context.Context, path string, body any) (*TypedResponse[T], error) {
	return doTyped[T](c, ctx, http.MethodPost, path, body)
}

// Get decodes the JSON response of a GET into T.
func Get[T any](c *Client, ctx context.Context, path string) (*TypedResponse[T], error) {
	return doTyped[T](c, ctx, http.MethodGet, path, nil)
}

// doTyped runs a request and decodes its body. Error responses are decoded
// too when possible, since providers describe failures in JSON.
func doTyped[T any](c *Client, ctx context.Context, method, path string, body any) (*TypedResponse[T], error) {
	resp, err := c.Do(ctx, Request{Method: method, Path: path, Body: body})
	if err != nil {
		if resp != nil {
			var data T
			if jsonErr := json.Unmarshal(resp.Body, &data); jsonErr == nil {
				return &TypedResponse[T]{StatusCode: resp.StatusCode, Headers: resp.Headers, Data: data}, err
			}
		}
		return nil, err
	}

	var data T
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return nil, fmt.Errorf("httpclient: decode response: %w", err)
		}
	}
	return &TypedResponse[T]{StatusCode: resp.StatusCode, Headers: resp.Headers, Data: data}, nil
}
