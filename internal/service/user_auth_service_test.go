package service

import (
	"errors"
	"testing"

	"github.com/pharmatrace/internal/config"
	"github.com/pharmatrace/internal/constants"
	"github.com/pharmatrace/internal/models"
)

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if _, ok := r.users[user.Email]; ok {
		return errors.New("UNIQUE constraint failed: users.email")
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.users[user.Email] = user
	return nil
}

func newUserAuthServiceForTest(t *testing.T) (*UserAuthService, *fakeUserRepo) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "unit-test-secret-key-0123456789abcdef"
	cfg.JWT.ExpireHours = 24
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8}
	repo := newFakeUserRepo()
	return NewUserAuthService(cfg, repo), repo
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	svc, _ := newUserAuthServiceForTest(t)

	user, token, _, err := svc.Register("  Alice@Example.COM ", "password123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email should be normalized, got %q", user.Email)
	}
	if user.DisplayName != "alice" {
		t.Fatalf("display name want alice got %q", user.DisplayName)
	}
	if user.Status != constants.UserStatusActive {
		t.Fatalf("new user status want active got %q", user.Status)
	}
	if user.PasswordHash == "password123" {
		t.Fatalf("password must be stored hashed")
	}
	if token == "" {
		t.Fatalf("register should issue a token")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, _, err := svc.Login("alice@example.com", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newUserAuthServiceForTest(t)
	if _, _, _, err := svc.Register("bob@example.com", "password123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, _, err := svc.Register("bob@example.com", "password456"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists, got %v", err)
	}
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	svc, _ := newUserAuthServiceForTest(t)
	for _, email := range []string{"", "   ", "not-an-email"} {
		if _, _, _, err := svc.Register(email, "password123"); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("email %q want ErrInvalidEmail, got %v", email, err)
		}
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _ := newUserAuthServiceForTest(t)
	if _, _, _, err := svc.Register("carol@example.com", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newUserAuthServiceForTest(t)
	if _, _, _, err := svc.Register("dave@example.com", "password123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, _, err := svc.Login("dave@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newUserAuthServiceForTest(t)
	if _, _, _, err := svc.Login("ghost@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginDisabledUser(t *testing.T) {
	svc, repo := newUserAuthServiceForTest(t)
	if _, _, _, err := svc.Register("erin@example.com", "password123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.users["erin@example.com"].Status = constants.UserStatusDisabled

	if _, _, _, err := svc.Login("erin@example.com", "password123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("want ErrUserDisabled, got %v", err)
	}
}

func TestLogoutInvalidatesEarlierTokens(t *testing.T) {
	svc, repo := newUserAuthServiceForTest(t)
	user, token, _, err := svc.Register("frank@example.com", "password123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	versionBefore := claims.TokenVersion

	if err := svc.Logout(user.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	updated := repo.users["frank@example.com"]
	if updated.TokenVersion != versionBefore+1 {
		t.Fatalf("token version want %d got %d", versionBefore+1, updated.TokenVersion)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatalf("token invalid-before timestamp must be set on logout")
	}
}
