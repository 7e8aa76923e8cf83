// Package lcd issues read-only queries against a Cosmos node's REST (LCD) interface.
//
// A query is a Request, which turns caller arguments into a path suffix and
// optional query parameters, paired with a Transform, which narrows the parsed
// JSON body into a typed result. Query binds the two into a Dispatcher that
// performs one GET per call and reports failures as *ParseError or
// *ResponseError so callers can inspect the raw response.
package lcd

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"
)

type Param struct {
	Key   string
	Value string
}

// Params keeps query parameters in insertion order.
type Params []Param

// Add appends a parameter and returns the extended list.
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// Encode renders key=value pairs joined by '&', in order.
func (p Params) Encode() string {
	var sb strings.Builder
	for i, kv := range p {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(kv.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(kv.Value))
	}
	return sb.String()
}

// ParamsFromStruct encodes a struct tagged with `url:"..."`. Keys come out
// sorted since url.Values carries no order.
func ParamsFromStruct(v any) (Params, error) {
	values, err := query.Values(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode query parameters")
	}

	encoded := values.Encode()
	if encoded == "" {
		return nil, nil
	}

	var params Params
	for _, pair := range strings.Split(encoded, "&") {
		k, val, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid key %q", k)
		}
		value, err := url.QueryUnescape(val)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value for %q", key)
		}
		params = params.Add(key, value)
	}
	return params, nil
}

// Descriptor is what a Request produces for a single call.
type Descriptor struct {
	Path   string
	Params Params
}

// URL joins origin and path, appending the query string only when there are
// parameters. origin is used verbatim.
func (d Descriptor) URL(origin string) string {
	if len(d.Params) == 0 {
		return origin + d.Path
	}
	return origin + d.Path + "?" + d.Params.Encode()
}

// Request maps caller arguments to a Descriptor. Builders taking several
// arguments use a struct for A; builders taking none use struct{}.
type Request[A any] func(args A) Descriptor

// Transform converts a successfully classified body into a result.
type Transform[R any] func(body Object) (R, error)

// Dispatcher performs one query against origin.
type Dispatcher[A, R any] func(ctx context.Context, origin string, args A) (R, error)

// NoArgs targets the origin itself with no parameters.
var NoArgs Request[struct{}] = func(struct{}) Descriptor {
	return Descriptor{}
}

// Query binds a request builder and a response transform.
func Query[A, R any](req Request[A], res Transform[R], opts ...Option) Dispatcher[A, R] {
	s := newSettings(opts)

	return func(ctx context.Context, origin string, args A) (R, error) {
		var zero R

		target := req(args).URL(origin)

		resp, text, err := fetch(ctx, s.client, target, s.header)
		if err != nil {
			return zero, err
		}

		body, ok := parseObject(text)
		if !ok {
			return zero, &ParseError{Response: resp, Text: text}
		}

		if !isSuccess(resp.StatusCode) || body.Code() {
			return zero, &ResponseError{Response: resp, Text: text, Body: body}
		}

		return res(body)
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
