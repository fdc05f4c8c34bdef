package payment

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefpradana/tokokita/pkg/logger"
)

// Result is what the payment page reports when it redirects back.
type Result struct {
	OrderID           string
	TransactionStatus string
}

// Settled reports whether the transaction finished in a payable state.
func (r Result) Settled() bool {
	switch r.TransactionStatus {
	case "capture", "settlement", "pending":
		return true
	}
	return false
}

// Listener runs a loopback HTTP server that catches the checkout redirect,
// the terminal equivalent of the payment page's widget callbacks.
type Listener struct {
	port int
	logg *logger.Logger
}

func NewListener(port int, logg *logger.Logger) *Listener {
	return &Listener{port: port, logg: logg}
}

// CallbackURL is where the hosted checkout should send the user afterwards.
func (l *Listener) CallbackURL() string {
	return fmt.Sprintf("http://127.0.0.1:%d/payment/finish", l.port)
}

// Wait serves until one redirect arrives or the context is cancelled. The
// first result wins; everything after it lands on a closed channel.
func (l *Listener) Wait(ctx context.Context) (Result, error) {
	results := make(chan Result, 1)

	router := chi.NewRouter()
	router.Get("/payment/finish", func(w http.ResponseWriter, r *http.Request) {
		result := Result{
			OrderID:           r.URL.Query().Get("order_id"),
			TransactionStatus: r.URL.Query().Get("transaction_status"),
		}
		select {
		case results <- result:
		default:
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "Pembayaran diterima. Silakan kembali ke terminal.")
	})

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", l.port))
	if err != nil {
		return Result{}, fmt.Errorf("starting callback listener: %w", err)
	}

	server := &http.Server{Handler: router}
	serveErr := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	l.logg.Info(l.logg.WithField(ctx, "callback_url", l.CallbackURL()), "waiting for payment redirect")

	select {
	case result := <-results:
		return result, nil
	case err := <-serveErr:
		return Result{}, fmt.Errorf("callback listener failed: %w", err)
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
