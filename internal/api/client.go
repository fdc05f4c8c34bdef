// Package api is a typed client for the storefront's REST API. It carries no
// business logic: requests go out with the session transport attached, JSON
// comes back mapped onto the wire types, and failures land in the shared
// error taxonomy. No retries beyond the session layer's silent token refresh,
// no caching.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ariefpradana/tokokita/internal/session"
	"github.com/ariefpradana/tokokita/pkg/config"
	pkgerrors "github.com/ariefpradana/tokokita/pkg/errors"
	"github.com/ariefpradana/tokokita/pkg/logger"
)

// Client talks to the commerce API server.
type Client struct {
	baseURL string
	http    *http.Client
	logg    *logger.Logger
}

// New wires the client with the refreshing session transport.
func New(cfg config.APIConfig, mgr *session.Manager, logg *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.Normalized(),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &session.Transport{Manager: mgr, Logger: logg},
		},
		logg: logg,
	}
}

// NewWithHTTPClient is for tests that need to point at a fake server.
func NewWithHTTPClient(baseURL string, httpClient *http.Client, logg *logger.Logger) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient, logg: logg}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	ctx := c.logg.WithFields(req.Context(), map[string]any{
		"request_id": requestID,
		"method":     req.Method,
		"path":       req.URL.Path,
	})
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.logg.Error(ctx, "api request failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, fmt.Sprintf("%s %s", req.Method, req.URL.Path))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "reading response body")
	}

	c.logg.Debug(c.logg.WithFields(ctx, map[string]any{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}), "api request completed")

	if resp.StatusCode >= 400 {
		return c.mapError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "decoding response body")
	}
	return nil
}

// errorEnvelope covers the message shapes the server answers with.
type errorEnvelope struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorEnvelope) text() string {
	for _, msg := range []string{e.Detail, e.Message, e.Error} {
		if strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return ""
}

func (c *Client) mapError(status int, body []byte) error {
	var envelope errorEnvelope
	json.Unmarshal(body, &envelope)
	message := envelope.text()
	if message == "" {
		message = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized:
		// The session transport already spent its one silent refresh.
		return pkgerrors.New(pkgerrors.CodeAuthRequired, message)
	case status == http.StatusForbidden:
		return pkgerrors.New(pkgerrors.CodeAuthRequired, message)
	case status == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	case status == http.StatusBadRequest:
		if isStockMessage(message) {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, message)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(fieldErrors(body))
	case status >= 500:
		return pkgerrors.New(pkgerrors.CodeNetwork, message)
	default:
		return pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("unexpected status %d: %s", status, message))
	}
}

// isStockMessage sniffs the server's stock rejection in either language the
// API answers with.
func isStockMessage(message string) bool {
	lowered := strings.ToLower(message)
	return strings.Contains(lowered, "stock") || strings.Contains(lowered, "stok")
}

// fieldErrors extracts DRF-style per-field error lists when present.
func fieldErrors(body []byte) map[string]string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}
	fields := make(map[string]string)
	for name, value := range raw {
		if name == "detail" || name == "message" || name == "error" {
			continue
		}
		var list []string
		if err := json.Unmarshal(value, &list); err == nil && len(list) > 0 {
			fields[name] = list[0]
			continue
		}
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			fields[name] = single
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// listEnvelope is the paginated response shape. Servers that ignore the page
// parameters answer with a bare array instead; decodeList handles both.
type listEnvelope struct {
	Count   int             `json:"count"`
	Results json.RawMessage `json:"results"`
}

// decodeList unmarshals either {"count": n, "results": [...]} or a bare
// array into items, returning the total count and whether the server did the
// pagination itself.
func decodeList(data []byte, items any) (count int, paged bool, err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope listEnvelope
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return 0, false, err
		}
		if envelope.Results != nil {
			if err := json.Unmarshal(envelope.Results, items); err != nil {
				return 0, false, err
			}
			return envelope.Count, true, nil
		}
	}
	if err := json.Unmarshal(trimmed, items); err != nil {
		return 0, false, err
	}
	return 0, false, nil
}

// getList fetches a collection endpoint and reports whether the server
// honored the pagination parameters.
func (c *Client) getList(ctx context.Context, path string, query url.Values, items any) (count int, paged bool, err error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return 0, false, err
	}
	count, paged, err = decodeList(raw, items)
	if err != nil {
		return 0, false, pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "decoding list response")
	}
	return count, paged, nil
}
