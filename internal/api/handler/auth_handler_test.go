package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/core/ports"
	"github.com/mshlentov/cinescope/internal/pkg/token"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in domain.NewUserInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, claims *token.Claims) error
}

func (s *stubAuthService) Register(ctx context.Context, in domain.NewUserInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, claims *token.Claims) error {
	return s.logoutFn(ctx, claims)
}

func (s *stubAuthService) Authorize(context.Context, string) (*token.Claims, error) {
	return nil, domain.ErrUnauthorized
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	created := time.Date(2025, 5, 6, 7, 8, 9, 120_000_000, time.UTC)
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in domain.NewUserInput) (*domain.User, error) {
			if in.Email != "alice@example.com" || in.FullName != "Alice" || in.Password != "secret123" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{
				ID:        "2b8a0a5e-1111-4c3e-9f59-6a3d0c2f7b10",
				Email:     in.Email,
				FullName:  in.FullName,
				Roles:     []domain.Role{domain.RoleUser},
				CreatedAt: created,
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"email":"alice@example.com","fullName":"Alice","password":"secret123","passwordRepeat":"secret123","roles":["USER"]}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/register", body), rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["createdAt"] != "2025-05-06T07:08:09.120Z" {
		t.Fatalf("unexpected createdAt: %v", resp["createdAt"])
	}
	if resp["verified"] != false || resp["banned"] != false {
		t.Fatalf("unexpected flags: %v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("password must not be rendered")
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, domain.NewUserInput) (*domain.User, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	body := `{"email":"not-an-email","fullName":"","password":"short","passwordRepeat":"other"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/register", body), rec)

	err := handler.Register(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{
		"Поле email должно быть корректным email адресом",
		"Поле fullName не может быть пустым",
		"Поле password должно содержать не менее 8 символов",
		domain.MsgPasswordsMismatch,
	}
	if strings.Join(ve.Messages, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected messages:\n got %q\nwant %q", ve.Messages, want)
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, domain.NewUserInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	})

	body := `{"email":"bob@example.com","fullName":"Bob","password":"secret123","passwordRepeat":"secret123"}`
	c := e.NewContext(jsonRequest(http.MethodPost, "/register", body), httptest.NewRecorder())

	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "carol@example.com" || password != "s3cretpass" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return &ports.LoginResult{
				AccessToken:  "token-value",
				RefreshToken: "refresh",
				ExpiresIn:    3600,
				User:         &domain.User{ID: "u-1", Email: email, FullName: "Carol", Roles: []domain.Role{domain.RoleAdmin}},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/login", `{"email":"carol@example.com","password":"s3cretpass"}`), rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AccessToken != "token-value" || resp.ExpiresIn != 3600 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.User.ID != "u-1" || len(resp.User.Roles) != 1 || resp.User.Roles[0] != "ADMIN" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestAuthHandler_Login_BadBodyIsInvalidCredentials(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/login", `{"email":`), httptest.NewRecorder())

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout_RequiresClaims(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/logout", nil), httptest.NewRecorder())

	if err := handler.Logout(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
