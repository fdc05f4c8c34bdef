package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/ariefpradana/tokokita/pkg/logger"
)

var errNoReplayableBody = errors.New("request body cannot be replayed")

type retriedKey struct{}

// Transport attaches the current access token to every outgoing request and
// transparently renews it exactly once per request on a 401 response. A
// request that still gets 401 after the retry is surfaced as-is, so there is
// no refresh loop. Requests without a token proceed unauthenticated.
type Transport struct {
	Base    http.RoundTripper
	Manager *Manager
	Logger  *logger.Logger
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	outgoing := req.Clone(req.Context())
	if token := t.Manager.AccessToken(); token != "" {
		outgoing.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.base().RoundTrip(outgoing)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	if retried, _ := req.Context().Value(retriedKey{}).(bool); retried {
		return resp, nil
	}

	// Buffer the 401 body now: if the refresh fails we hand this original
	// response back to the caller.
	original, readErr := bufferResponse(resp)
	if readErr != nil {
		return nil, readErr
	}

	if _, refreshErr := t.Manager.Refresh(req.Context()); refreshErr != nil {
		if t.Logger != nil {
			t.Logger.Warn(req.Context(), "silent token refresh failed")
		}
		return original, nil
	}

	retry, retryErr := t.markRetried(req)
	if retryErr != nil {
		// Body cannot be replayed; the original 401 stands.
		return original, nil
	}
	io.Copy(io.Discard, original.Body)
	original.Body.Close()

	// Re-dispatch through RoundTrip so the rotated token is attached; the
	// retried marker stops a second refresh if the server still says 401.
	return t.RoundTrip(retry)
}

// markRetried clones the request with a replayable body and the retried flag.
func (t *Transport) markRetried(req *http.Request) (*http.Request, error) {
	ctx := context.WithValue(req.Context(), retriedKey{}, true)
	retry := req.Clone(ctx)
	if req.Body == nil {
		return retry, nil
	}
	if req.GetBody == nil {
		return nil, errNoReplayableBody
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	retry.Body = body
	return retry, nil
}

func bufferResponse(resp *http.Response) (*http.Response, error) {
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(data))
	return resp, nil
}
