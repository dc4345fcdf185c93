package service

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devcircle/social-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = "user_" + strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// FindByID mimics the store's password-free projection.
func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	projected := cloneUser(u)
	projected.PasswordHash = ""
	return projected, nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func newAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, NewTokenService("secret", time.Hour), zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.PasswordHash != "" {
		t.Fatalf("returned user must not carry the hash")
	}
	if !strings.HasPrefix(user.Avatar, "https://www.gravatar.com/avatar/") {
		t.Fatalf("unexpected avatar: %s", user.Avatar)
	}
	if !strings.HasSuffix(user.Avatar, "?s=200&r=pg&d=mm") {
		t.Fatalf("avatar missing gravatar params: %s", user.Avatar)
	}

	stored := repo.users[user.ID]
	if stored.PasswordHash == "" || stored.PasswordHash == "secret1" {
		t.Fatalf("expected stored password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "Other Ann", "ann@x.com", "secret2"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("duplicate register must not persist, have %d users", len(repo.users))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	tokens := NewTokenService("secret", time.Hour)
	svc := NewAuthService(repo, tokens, zerolog.Nop())

	created, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Login(context.Background(), "ann@x.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	userID, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if userID != created.ID {
		t.Fatalf("token resolves to %s, want %s", userID, created.ID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	_, _ = svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	if _, err := svc.Login(context.Background(), "ann@x.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// Unknown email and bad password must be indistinguishable to the caller.
func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Login(context.Background(), "ghost@x.com", "whatever"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_CurrentUser_ExcludesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	created, _ := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")

	user, err := svc.CurrentUser(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if user.PasswordHash != "" {
		t.Fatalf("password must be excluded from reads")
	}
	if user.Name != "Ann" || user.Email != "ann@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestGravatarURL_Deterministic(t *testing.T) {
	a := GravatarURL("Ann@X.com ")
	b := GravatarURL("ann@x.com")
	if a != b {
		t.Fatalf("gravatar must normalise case and whitespace: %s vs %s", a, b)
	}
}
