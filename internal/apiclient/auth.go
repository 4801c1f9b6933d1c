package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/me/insadmin/pkg/model"
)

// LoginResult is a successful sign-in.
type LoginResult struct {
	Token       string
	User        model.User
	Permissions model.PermissionSet
	// TokenExp is the token's exp claim, zero for opaque tokens.
	TokenExp time.Time
}

type wireLogin struct {
	Success *bool  `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
	User    struct {
		wireUser
		Permissions []string `json:"permissions"`
	} `json:"user"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body, err := c.send(ctx, "", "auth.login", http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var w wireLogin
	if err := json.Unmarshal(payload(body), &w); err != nil {
		return nil, fmt.Errorf("decode login: %w", err)
	}
	token := NormalizeToken(w.Token)
	if (w.Success != nil && !*w.Success) || token == "" {
		msg := w.Message
		if msg == "" {
			msg = "login failed"
		}
		return nil, model.NewUnauthorizedError(msg)
	}

	res := &LoginResult{
		Token:       token,
		User:        w.User.wireUser.model(),
		Permissions: model.ParsePermissions(w.User.Permissions),
	}
	if res.User.Username == "" {
		res.User.Username = username
	}
	if exp, ok := TokenExpiry(token); ok {
		res.TokenExp = exp
	}
	return res, nil
}
