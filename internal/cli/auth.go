package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/ariefpradana/tokokita/internal/api"
	"github.com/ariefpradana/tokokita/internal/forms"
)

func (a *App) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	username := fs.String("username", "", "account name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password, at least 6 characters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := forms.RegisterForm{Username: *username, Email: *email, Password: *password}
	if err := forms.Validate(form); err != nil {
		return err
	}
	if err := a.client.Register(ctx, api.RegisterInput(form)); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "account %s created, you can log in now\n", form.Username)
	return nil
}

func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	username := fs.String("username", "", "account name")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := forms.LoginForm{Username: *username, Password: *password}
	if err := forms.Validate(form); err != nil {
		return err
	}
	pair, err := a.client.Login(ctx, api.LoginInput(form))
	if err != nil {
		return err
	}
	if err := a.session.SetTokens(pair.Access, pair.Refresh); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s\n", form.Username)
	return nil
}

func (a *App) runLogout(ctx context.Context, args []string) error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) runProfile(ctx context.Context, args []string) error {
	profile, err := a.client.Profile(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "username: %s\n", profile.Username)
	fmt.Fprintf(a.out, "email:    %s\n", profile.Email)
	if profile.FirstName != "" || profile.LastName != "" {
		fmt.Fprintf(a.out, "name:     %s %s\n", profile.FirstName, profile.LastName)
	}
	if profile.IsStaff || profile.IsSuperuser {
		fmt.Fprintln(a.out, "role:     admin")
	}
	if expiry, ok := a.session.AccessExpiresAt(); ok {
		fmt.Fprintf(a.out, "session:  valid until %s\n", expiry.Local().Format(time.RFC822))
	}
	return nil
}

func (a *App) runProfileUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile-update", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	email := fs.String("email", "", "new email address")
	firstName := fs.String("first-name", "", "new first name")
	lastName := fs.String("last-name", "", "new last name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := forms.ProfileForm{Email: *email, FirstName: *firstName, LastName: *lastName}
	if err := forms.Validate(form); err != nil {
		return err
	}
	profile, err := a.client.UpdateProfile(ctx, api.ProfileUpdate(form))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "profile updated for %s\n", profile.Username)
	return nil
}
