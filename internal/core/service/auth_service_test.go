package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/crypto/bcrypt"

	"github.com/mshlentov/cinescope/internal/core/domain"
	"github.com/mshlentov/cinescope/internal/metrics"
	"github.com/mshlentov/cinescope/internal/pkg/token"
)

func newTestAuthService() (*AuthService, *stubUserRepo, *stubSessions) {
	repo := newStubUserRepo()
	sessions := newStubSessions()
	svc := NewAuthService(repo, sessions, token.NewIssuer("secret", time.Hour), bcrypt.MinCost)
	return svc, repo, sessions
}

func registerInput(email string) domain.NewUserInput {
	return domain.NewUserInput{
		Email:    email,
		FullName: "Alice Liddell",
		Password: "pass1234A",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), registerInput("Alice@Example.com"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected lower-cased email, got %q", user.Email)
	}
	if user.PasswordHash == "pass1234A" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234A")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Verified {
		t.Fatalf("new registrations must not be verified")
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("expected createdAt to be set")
	}
}

func TestAuthService_Register_IgnoresRequestedRoles(t *testing.T) {
	svc, _, _ := newTestAuthService()

	in := registerInput("bob@example.com")
	in.Roles = []domain.Role{domain.RoleSuperAdmin}
	in.Verified = true

	user, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Fatalf("expected [USER], got %v", user.Roles)
	}
	if user.Verified {
		t.Fatalf("expected verified=false")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), registerInput("bob@example.com")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("BOB@example.com")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), domain.NewUserInput{}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, sessions := newTestAuthService()

	registered, err := svc.Register(context.Background(), registerInput("carol@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "carol@example.com", "pass1234A")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatalf("expected tokens, got %+v", res)
	}
	if res.ExpiresIn != int64(time.Hour.Seconds()) {
		t.Fatalf("unexpected expiresIn: %d", res.ExpiresIn)
	}
	if res.User.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", res.User)
	}

	claims, err := svc.Authorize(context.Background(), res.AccessToken)
	if err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	if claims.UserID() != registered.ID {
		t.Fatalf("unexpected subject: %s", claims.UserID())
	}
	if len(sessions.active) != 1 {
		t.Fatalf("expected one active session, got %d", len(sessions.active))
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), registerInput("dave@example.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	cases := map[string][2]string{
		"wrong password": {"dave@example.com", "nope1234"},
		"unknown email":  {"ghost@example.com", "pass1234A"},
		"empty email":    {"", "pass1234A"},
		"empty password": {"dave@example.com", ""},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Login(context.Background(), c[0], c[1]); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), registerInput("erin@example.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	res, err := svc.Login(context.Background(), "erin@example.com", "pass1234A")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := svc.Authorize(context.Background(), res.AccessToken)
	if err != nil {
		t.Fatalf("authorize failed: %v", err)
	}

	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Authorize(context.Background(), res.AccessToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}
}

func TestAuthService_Authorize_RejectsGarbage(t *testing.T) {
	svc, _, _ := newTestAuthService()

	if _, err := svc.Authorize(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Authorize_RejectsForeignSignature(t *testing.T) {
	svc, _, _ := newTestAuthService()
	foreign := token.NewIssuer("other-secret", time.Hour)

	raw, _, err := foreign.Issue(&domain.User{ID: "x", Email: "x@example.com", Roles: []domain.Role{domain.RoleSuperAdmin}})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := svc.Authorize(context.Background(), raw); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Login_CountsAttempts(t *testing.T) {
	svc, _, _ := newTestAuthService()
	if _, err := svc.Register(context.Background(), registerInput("erin@example.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	success := metrics.TwinLoginsTotal.WithLabelValues("success")
	failure := metrics.TwinLoginsTotal.WithLabelValues("failure")
	okBefore, failBefore := testutil.ToFloat64(success), testutil.ToFloat64(failure)

	if _, err := svc.Login(context.Background(), "erin@example.com", "pass1234A"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	_, _ = svc.Login(context.Background(), "erin@example.com", "wrong1234")

	if got := testutil.ToFloat64(success) - okBefore; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(failure) - failBefore; got != 1 {
		t.Errorf("failure delta = %v, want 1", got)
	}
}
