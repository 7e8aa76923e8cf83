package lcd

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/xlab/suplog"
)

// Doer is the transport a Dispatcher issues its single GET through.
// *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type settings struct {
	client Doer
	header http.Header
}

type Option func(*settings)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c Doer) Option {
	return func(s *settings) {
		if c != nil {
			s.client = c
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(s *settings) {
		s.header.Add(key, value)
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{
		client: http.DefaultClient,
		header: http.Header{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func requestGet(ctx context.Context, url string, header http.Header) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range header {
		req.Header[k] = append([]string(nil), v...)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// fetch performs exactly one request and reads the whole body.
func fetch(ctx context.Context, c Doer, url string, header http.Header) (*http.Response, string, error) {
	req, err := requestGet(ctx, url, header)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to build request")
	}

	res, err := c.Do(req)
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to request %s", url)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return res, "", errors.Wrapf(err, "failed to read response body from %s", url)
	}

	log.WithFields(log.Fields{
		"url":    url,
		"status": res.StatusCode,
		"bytes":  len(body),
	}).Debug("lcd query")

	return res, string(body), nil
}
