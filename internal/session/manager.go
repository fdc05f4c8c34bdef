package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/multierr"
	"golang.org/x/sync/singleflight"

	pkgerrors "github.com/ariefpradana/tokokita/pkg/errors"
	"github.com/ariefpradana/tokokita/pkg/logger"
)

var (
	// ErrNoRefreshToken means a refresh was requested with nothing to send.
	ErrNoRefreshToken = pkgerrors.New(pkgerrors.CodeAuthRequired, "no refresh token available")
	// ErrRefreshRejected means the server refused the refresh token; the
	// persisted session has been cleared and the user must log in again.
	ErrRefreshRejected = pkgerrors.New(pkgerrors.CodeRefreshRejected, "refresh token rejected")
)

// Manager owns the access/refresh pair: it persists the tokens on login,
// renews the access token on demand, and evicts everything when the server
// rejects a refresh. Concurrent refreshes coalesce into a single round-trip.
type Manager struct {
	store      Store
	refreshURL string
	http       *http.Client
	logg       *logger.Logger
	group      singleflight.Group
}

// NewManager builds a session manager. The HTTP client must NOT carry the
// refreshing transport, otherwise a rejected refresh would refresh itself.
func NewManager(store Store, apiBaseURL string, httpClient *http.Client, logg *logger.Logger) *Manager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Manager{
		store:      store,
		refreshURL: strings.TrimRight(apiBaseURL, "/") + "/auth/token/refresh/",
		http:       httpClient,
		logg:       logg,
	}
}

// AccessToken returns the persisted access token, or "" when logged out.
func (m *Manager) AccessToken() string {
	creds, err := m.store.Load()
	if err != nil {
		return ""
	}
	return creds.Access
}

// Credentials returns everything currently persisted.
func (m *Manager) Credentials() (Credentials, error) {
	return m.store.Load()
}

// SetTokens persists a new pair. An empty refresh keeps the previous one,
// matching servers that only rotate the refresh token sometimes.
func (m *Manager) SetTokens(access, refresh string) error {
	creds, err := m.store.Load()
	if err != nil {
		return err
	}
	creds.Access = access
	if refresh != "" {
		creds.Refresh = refresh
	}
	return m.store.Save(creds)
}

// SetClientKey persists the payment widget client key alongside the tokens.
func (m *Manager) SetClientKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	creds, err := m.store.Load()
	if err != nil {
		return err
	}
	creds.MidtransClientKey = key
	return m.store.Save(creds)
}

// Logout clears every persisted credential.
func (m *Manager) Logout() error {
	return m.store.Clear()
}

// AccessExpiresAt peeks at the access token's exp claim without verifying
// the signature (the client has no key material; expiry is informational).
func (m *Manager) AccessExpiresAt() (time.Time, bool) {
	creds, err := m.store.Load()
	if err != nil || creds.Access == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(creds.Access, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// Refresh exchanges the persisted refresh token for a new access token and
// persists the result. Concurrent callers share one in-flight exchange.
// A server rejection clears the stored session and returns ErrRefreshRejected;
// transport failures leave the session intact.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	access, err, _ := m.group.Do("refresh", func() (any, error) {
		return m.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return access.(string), nil
}

func (m *Manager) refresh(ctx context.Context) (string, error) {
	creds, err := m.store.Load()
	if err != nil {
		return "", err
	}
	if creds.Refresh == "" {
		return "", ErrNoRefreshToken
	}

	body, err := json.Marshal(refreshRequest{Refresh: creds.Refresh})
	if err != nil {
		return "", fmt.Errorf("encoding refresh request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.refreshURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "refreshing token")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		m.logg.Warn(m.logg.WithField(ctx, "status", resp.StatusCode), "token refresh rejected, clearing session")
		var combined error = ErrRefreshRejected
		if clearErr := m.store.Clear(); clearErr != nil {
			combined = multierr.Append(combined, clearErr)
		}
		return "", combined
	}

	var parsed refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "decoding refresh response")
	}
	if parsed.Access == "" {
		return "", pkgerrors.New(pkgerrors.CodeNetwork, "refresh response missing access token")
	}
	if err := m.SetTokens(parsed.Access, parsed.Refresh); err != nil {
		return "", err
	}

	m.logg.Debug(ctx, "access token refreshed")
	return parsed.Access, nil
}
