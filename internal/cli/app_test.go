package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ariefpradana/tokokita/internal/api"
	"github.com/ariefpradana/tokokita/internal/session"
	"github.com/ariefpradana/tokokita/pkg/config"
	"github.com/ariefpradana/tokokita/pkg/logger"
)

type testApp struct {
	app   *App
	store *session.MemoryStore
	out   *bytes.Buffer
	err   *bytes.Buffer
}

func newTestApp(t *testing.T, handler http.HandlerFunc) *testApp {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logg := logger.New(logger.Options{Output: io.Discard})
	store := session.NewMemoryStore(session.Credentials{})
	mgr := session.NewManager(store, server.URL+"/api", nil, logg)
	client := api.NewWithHTTPClient(server.URL+"/api", server.Client(), logg)

	cfg := &config.Config{
		Listing: config.ListingConfig{ProductPageSize: 12, OrderPageSize: 10},
	}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &testApp{
		app:   New(cfg, logg, mgr, client, out, errOut),
		store: store,
		out:   out,
		err:   errOut,
	}
}

func TestLoginPersistsSession(t *testing.T) {
	ta := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var input api.LoginInput
		json.NewDecoder(r.Body).Decode(&input)
		if input.Username != "arief" {
			t.Errorf("unexpected username %q", input.Username)
		}
		json.NewEncoder(w).Encode(api.TokenPair{Access: "acc-1", Refresh: "ref-1"})
	})

	code := ta.app.Run(context.Background(), []string{"login", "-username", "arief", "-password", "rahasia"})
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, ta.err.String())
	}
	creds, _ := ta.store.Load()
	if creds.Access != "acc-1" || creds.Refresh != "ref-1" {
		t.Fatalf("session not persisted: %+v", creds)
	}
	if !strings.Contains(ta.out.String(), "logged in as arief") {
		t.Fatalf("missing confirmation: %s", ta.out.String())
	}
}

func TestLoginValidatesBeforeRequest(t *testing.T) {
	requests := 0
	ta := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	code := ta.app.Run(context.Background(), []string{"login", "-username", "arief"})
	if code != 1 {
		t.Fatalf("expected failure, got exit code %d", code)
	}
	if requests != 0 {
		t.Fatalf("invalid form should not reach the server, saw %d requests", requests)
	}
	if !strings.Contains(ta.err.String(), "password") {
		t.Fatalf("missing field detail: %s", ta.err.String())
	}
}

func TestCartAddClampsAgainstVariantStock(t *testing.T) {
	posts := 0
	ta := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/products/2/":
			json.NewEncoder(w).Encode(api.Product{
				ID: 2, Name: "Kaos", Price: decimal.NewFromInt(50000),
				Variants: []api.Variant{{ID: 10, ColorName: "Merah", Stock: 2, IsActive: true}},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/cart/":
			posts++
			var input api.AddToCartInput
			json.NewDecoder(r.Body).Decode(&input)
			json.NewEncoder(w).Encode(api.CartItem{ID: 1, Quantity: input.Quantity})
		default:
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	})

	code := ta.app.Run(context.Background(), []string{"cart-add", "-product", "2", "-variant", "10", "-qty", "5"})
	if code != 1 {
		t.Fatalf("over-stock add should fail, got exit code %d", code)
	}
	if posts != 0 {
		t.Fatalf("clamp should reject before the cart call, saw %d posts", posts)
	}

	code = ta.app.Run(context.Background(), []string{"cart-add", "-product", "2", "-variant", "10", "-qty", "2"})
	if code != 0 {
		t.Fatalf("in-stock add failed: %s", ta.err.String())
	}
	if posts != 1 {
		t.Fatalf("expected one cart post, saw %d", posts)
	}
}

func TestCartRendersTotals(t *testing.T) {
	ta := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]api.CartItem{
			{ID: 1, Product: api.Product{Name: "Serum", Price: decimal.NewFromInt(50000)}, Quantity: 2},
			{ID: 2, Product: api.Product{Name: "Toner", Price: decimal.NewFromInt(30000)}, Quantity: 1},
		})
	})

	if code := ta.app.Run(context.Background(), []string{"cart"}); code != 0 {
		t.Fatalf("cart failed: %s", ta.err.String())
	}
	output := ta.out.String()
	if !strings.Contains(output, "Rp 100.000") {
		t.Fatalf("line total missing: %s", output)
	}
	if !strings.Contains(output, "subtotal: Rp 130.000") {
		t.Fatalf("subtotal missing: %s", output)
	}
}

func TestUnknownCommandUsage(t *testing.T) {
	ta := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {})
	if code := ta.app.Run(context.Background(), []string{"frobnicate"}); code != 2 {
		t.Fatal("unknown command should exit 2")
	}
	if !strings.Contains(ta.err.String(), "Usage: tokokita") {
		t.Fatalf("usage missing: %s", ta.err.String())
	}
}

func TestAuthRequiredSuggestsLogin(t *testing.T) {
	ta := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Authentication credentials were not provided."})
	})

	if code := ta.app.Run(context.Background(), []string{"orders"}); code != 1 {
		t.Fatal("unauthenticated orders should fail")
	}
	if !strings.Contains(ta.err.String(), "tokokita login") {
		t.Fatalf("login hint missing: %s", ta.err.String())
	}
}
