package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

func TestUserService_Create_KeepsRolesAndFlags(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), bcrypt.MinCost)

	user, err := svc.Create(context.Background(), domain.NewUserInput{
		Email:    "admin@example.com",
		FullName: "Ada Admin",
		Password: "pass1234A",
		Verified: true,
		Roles:    []domain.Role{domain.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleAdmin {
		t.Fatalf("unexpected roles: %v", user.Roles)
	}
	if !user.Verified {
		t.Fatalf("expected verified user")
	}
}

func TestUserService_Create_DefaultsToUserRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), bcrypt.MinCost)

	user, err := svc.Create(context.Background(), domain.NewUserInput{Email: "u@example.com", Password: "pass1234A"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Fatalf("expected [USER], got %v", user.Roles)
	}
}

func TestUserService_Create_RejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), bcrypt.MinCost)

	_, err := svc.Create(context.Background(), domain.NewUserInput{
		Email:    "u@example.com",
		Password: "pass1234A",
		Roles:    []domain.Role{"ROOT"},
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUserService_Get_ByIDAndEmail(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), bcrypt.MinCost)

	created, err := svc.Create(context.Background(), domain.NewUserInput{Email: "find@example.com", Password: "pass1234A"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	byID, err := svc.Get(context.Background(), created.ID)
	if err != nil || byID.Email != "find@example.com" {
		t.Fatalf("lookup by id failed: %+v, %v", byID, err)
	}
	byEmail, err := svc.Get(context.Background(), "FIND@example.com")
	if err != nil || byEmail.ID != created.ID {
		t.Fatalf("lookup by email failed: %+v, %v", byEmail, err)
	}
	if _, err := svc.Get(context.Background(), "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, bcrypt.MinCost)

	created, err := svc.Create(context.Background(), domain.NewUserInput{Email: "gone@example.com", Password: "pass1234A"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	deleted, err := svc.Delete(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.ID != created.ID {
		t.Fatalf("expected deleted user to be returned, got %+v", deleted)
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected repository to be empty")
	}
	if _, err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}
