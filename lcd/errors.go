package lcd

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ParseError is returned when the response body is not a JSON object.
type ParseError struct {
	Response *http.Response
	Text     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("lcd: malformed response (%s): %s", statusOf(e.Response), truncate(e.Text, 200))
}

// ResponseError is returned for a non-2xx status, or for any response whose
// body carries a non-zero code.
type ResponseError struct {
	Response *http.Response
	Text     string
	Body     Object
}

func (e *ResponseError) Error() string {
	if msg, ok := e.Body["message"].(string); ok && msg != "" {
		return fmt.Sprintf("lcd: query failed (%s, code %v): %s", statusOf(e.Response), e.Body["code"], msg)
	}
	return fmt.Sprintf("lcd: query failed (%s): %s", statusOf(e.Response), truncate(e.Text, 200))
}

func (e *ResponseError) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Code returns the body's code field, or nil when absent.
func (e *ResponseError) Code() any {
	return e.Body["code"]
}

// Details recovers the response, raw text and, for a ResponseError, the parsed
// body from err. ok is false when err carries neither error type.
func Details(err error) (resp *http.Response, text string, body Object, ok bool) {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.Response, respErr.Text, respErr.Body, true
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Response, parseErr.Text, nil, true
	}

	return nil, "", nil, false
}

func statusOf(res *http.Response) string {
	if res == nil {
		return "no response"
	}
	return res.Status
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
