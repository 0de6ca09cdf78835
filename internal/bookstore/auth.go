package bookstore

import (
	"context"
	"net/http"
)

const (
	report_client_login    = "client.login"
	report_client_logout   = "client.logout"
	report_client_me       = "client.me"
	report_client_register = "client.register"
)

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// Login establishes a session, the session cookie is kept by the client's jar.
func (c *Client) Login(ctx context.Context, userName, password string) (User, error) {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	req := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(loginRequest{UserName: userName, Password: password})
	res, err := c.execute(ctx, req, http.MethodPost, "/auth/login")
	if err != nil {
		return User{}, c.fail(span, report_client_login, err, userName)
	}
	user, err := decode[User](res)
	if err != nil {
		return User{}, c.fail(span, report_client_login, err, userName)
	}
	return user, nil
}

func (c *Client) Logout(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:Logout")
	defer span.End()

	_, err := c.execute(ctx, c.http.R(), http.MethodPost, "/auth/logout")
	if err != nil {
		return c.fail(span, report_client_logout, err)
	}
	return nil
}

// Me returns the user owning the current session, a guest gets an error
// matching ErrAuthRequired.
func (c *Client) Me(ctx context.Context) (User, error) {
	ctx, span := tracer.Start(ctx, "client:Me")
	defer span.End()

	res, err := c.execute(ctx, c.http.R(), http.MethodGet, "/auth/me")
	if err != nil {
		return User{}, c.fail(span, report_client_me, err)
	}
	user, err := decode[User](res)
	if err != nil {
		return User{}, c.fail(span, report_client_me, err)
	}
	return user, nil
}

// Register creates a regular user account, req.Role is ignored.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (User, error) {
	ctx, span := tracer.Start(ctx, "client:Register")
	defer span.End()

	req.Role = ""
	r := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(req)
	res, err := c.execute(ctx, r, http.MethodPost, "/auth/register")
	if err != nil {
		return User{}, c.fail(span, report_client_register, err, req.UserName)
	}
	user, err := decode[User](res)
	if err != nil {
		return User{}, c.fail(span, report_client_register, err, req.UserName)
	}
	return user, nil
}
