package cinescope

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mshlentov/cinescope/internal/client/requester"
	"github.com/mshlentov/cinescope/internal/client/schema"
	"github.com/mshlentov/cinescope/internal/core/domain"
)

const (
	registerEndpoint = "/register"
	loginEndpoint    = "/login"
	logoutEndpoint   = "/logout"
)

// AuthAPI talks to the auth service.
type AuthAPI struct {
	r *requester.Requester
}

func NewAuthAPI(r *requester.Requester) *AuthAPI {
	return &AuthAPI{r: r}
}

// Register signs a new user up. Expected status defaults to 201.
func (a *AuthAPI) Register(ctx context.Context, user RegisterUserRequest, expect ...int) (*requester.Response, error) {
	return a.r.Send(ctx, requester.Request{
		Method:         http.MethodPost,
		Endpoint:       registerEndpoint,
		Body:           user,
		ExpectedStatus: expectOr(http.StatusCreated, expect),
	})
}

// Login posts credentials. Expected status defaults to 200.
func (a *AuthAPI) Login(ctx context.Context, creds LoginRequest, expect ...int) (*requester.Response, error) {
	return a.r.Send(ctx, requester.Request{
		Method:         http.MethodPost,
		Endpoint:       loginEndpoint,
		Body:           creds,
		ExpectedStatus: expectOr(http.StatusOK, expect),
	})
}

// Authenticate logs in and stores the access token on the session, so every
// later call through the same manager is authorised.
func (a *AuthAPI) Authenticate(ctx context.Context, cred domain.Credential) (*schema.AuthResponse, error) {
	resp, err := a.Login(ctx, LoginRequestFor(cred))
	if err != nil {
		return nil, fmt.Errorf("authenticate %s: %w", cred.Email(), err)
	}

	auth, err := schema.Decode[schema.AuthResponse](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("authenticate %s: %w", cred.Email(), err)
	}

	a.r.Session().SetBearerToken(auth.AccessToken)
	return &auth, nil
}

// Logout revokes the current token. Expected status defaults to 200; on
// success the session forgets the token.
func (a *AuthAPI) Logout(ctx context.Context, expect ...int) (*requester.Response, error) {
	resp, err := a.r.Send(ctx, requester.Request{
		Method:         http.MethodGet,
		Endpoint:       logoutEndpoint,
		ExpectedStatus: expectOr(http.StatusOK, expect),
	})
	if err == nil && resp.StatusCode == http.StatusOK {
		a.r.Session().ClearBearerToken()
	}
	return resp, err
}
