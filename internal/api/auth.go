package api

import (
	"context"
	"net/http"
)

// TokenPair is the login response.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileUpdate struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

func (c *Client) Login(ctx context.Context, input LoginInput) (TokenPair, error) {
	var pair TokenPair
	err := c.do(ctx, http.MethodPost, "/auth/login/", nil, input, &pair)
	return pair, err
}

func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/auth/register/", nil, input, nil)
}

func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var profile Profile
	err := c.do(ctx, http.MethodGet, "/auth/profile/", nil, nil, &profile)
	return profile, err
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (Profile, error) {
	var profile Profile
	err := c.do(ctx, http.MethodPut, "/auth/profile/", nil, update, &profile)
	return profile, err
}

// IsAdmin is a best-effort probe of the back-office flag: any failure reads
// as "not admin" rather than surfacing an error.
func (c *Client) IsAdmin(ctx context.Context) bool {
	profile, err := c.Profile(ctx)
	if err != nil {
		return false
	}
	return profile.IsStaff || profile.IsSuperuser
}
