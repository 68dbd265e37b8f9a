package gateway

import (
	"context"

	"github.com/azizbekh/staffdesk/internal/apiclient"
	"github.com/azizbekh/staffdesk/internal/model"
)

// Auth wraps the three authentication endpoints. Each returns the token
// the backend issued; persisting it is the caller's job.
type Auth struct {
	client *apiclient.Client
}

func NewAuth(client *apiclient.Client) *Auth {
	return &Auth{client: client}
}

func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	var resp model.LoginResponse
	err := a.client.DoJSON(ctx, apiclient.Spec{
		Path:   "/login",
		Method: "POST",
		Body:   model.LoginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (a *Auth) SignUp(ctx context.Context, req model.SignUpRequest) (string, error) {
	var resp model.LoginResponse
	err := a.client.DoJSON(ctx, apiclient.Spec{
		Path:   "/user/sign-up",
		Method: "POST",
		Body:   req,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (a *Auth) GoogleSignIn(ctx context.Context, email string) (string, error) {
	var resp model.LoginResponse
	err := a.client.DoJSON(ctx, apiclient.Spec{
		Path:   "/user/sign-in/google",
		Method: "POST",
		Body:   model.GoogleSignInRequest{Email: email},
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Settings reads and replaces the single settings document.
type Settings struct {
	client *apiclient.Client
}

func NewSettings(client *apiclient.Client) *Settings {
	return &Settings{client: client}
}

func (s *Settings) Get(ctx context.Context) (model.Settings, error) {
	var out model.Settings
	err := s.client.DoJSON(ctx, apiclient.Spec{
		Path:   "/settings",
		Method: "GET",
	}, &out)
	return out, err
}

func (s *Settings) Put(ctx context.Context, settings model.Settings) error {
	return s.client.DoJSON(ctx, apiclient.Spec{
		Path:   "/settings",
		Method: "PUT",
		Body:   settings,
	}, nil)
}
