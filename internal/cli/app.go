// Package cli is the terminal storefront: it maps subcommands onto the API
// client, keeps the session manager fed, and renders results as tables. All
// input is validated locally before a request goes out.
package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/ariefpradana/tokokita/internal/api"
	"github.com/ariefpradana/tokokita/internal/session"
	"github.com/ariefpradana/tokokita/pkg/config"
	pkgerrors "github.com/ariefpradana/tokokita/pkg/errors"
	"github.com/ariefpradana/tokokita/pkg/logger"
)

// App holds the wired dependencies for one invocation.
type App struct {
	cfg     *config.Config
	logg    *logger.Logger
	session *session.Manager
	client  *api.Client
	out     io.Writer
	errOut  io.Writer
}

func New(cfg *config.Config, logg *logger.Logger, mgr *session.Manager, client *api.Client, out, errOut io.Writer) *App {
	return &App{cfg: cfg, logg: logg, session: mgr, client: client, out: out, errOut: errOut}
}

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string) error
}

func (a *App) commands() []command {
	return []command{
		{"register", "create an account", a.runRegister},
		{"login", "sign in and persist the session", a.runLogin},
		{"logout", "clear the persisted session", a.runLogout},
		{"profile", "show the signed-in profile", a.runProfile},
		{"profile-update", "change profile fields", a.runProfileUpdate},
		{"products", "browse the catalog", a.runProducts},
		{"product", "show one product with variants and images", a.runProduct},
		{"categories", "list categories", a.runCategories},
		{"cart", "show the cart with totals", a.runCart},
		{"cart-add", "add a product to the cart", a.runCartAdd},
		{"cart-qty", "change a cart line's quantity", a.runCartQty},
		{"cart-remove", "remove a cart line", a.runCartRemove},
		{"checkout", "place the order and open payment", a.runCheckout},
		{"orders", "show order history", a.runOrders},
		{"admin", "back-office commands", a.runAdmin},
	}
}

// Run dispatches a subcommand and turns its error into an exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.usage()
		return 2
	}

	name := args[0]
	for _, cmd := range a.commands() {
		if cmd.name != name {
			continue
		}
		if err := cmd.run(ctx, args[1:]); err != nil {
			a.reportError(err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(a.errOut, "unknown command %q\n\n", name)
	a.usage()
	return 2
}

func (a *App) usage() {
	fmt.Fprintln(a.errOut, "Usage: tokokita <command> [flags]")
	fmt.Fprintln(a.errOut)
	fmt.Fprintln(a.errOut, "Commands:")
	for _, cmd := range a.commands() {
		fmt.Fprintf(a.errOut, "  %-15s %s\n", cmd.name, cmd.summary)
	}
}

// reportError prints the user-facing message for the error's code, then the
// per-field details when the taxonomy allows them.
func (a *App) reportError(err error) {
	code := pkgerrors.CodeOf(err)
	meta := pkgerrors.MetadataFor(code)

	fmt.Fprintf(a.errOut, "error: %s\n", meta.UserMessage)

	if typed := pkgerrors.As(err); typed != nil && meta.DetailsAllowed {
		switch details := typed.Details().(type) {
		case map[string]string:
			names := make([]string, 0, len(details))
			for name := range details {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(a.errOut, "  %s: %s\n", name, details[name])
			}
		case map[string]int:
			names := make([]string, 0, len(details))
			for name := range details {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(a.errOut, "  %s: %d\n", name, details[name])
			}
		}
		if msg := typed.Message(); msg != "" && typed.Details() == nil {
			fmt.Fprintf(a.errOut, "  %s\n", msg)
		}
	}

	if meta.RequiresLogin {
		fmt.Fprintln(a.errOut, "run 'tokokita login' to sign in")
	}

	a.logg.Error(a.logg.WithField(context.Background(), "code", string(code)), "command failed", err)
}
