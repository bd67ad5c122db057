package service

import (
	"errors"
	"testing"

	"github.com/hntruong/quizdeck/config"
	"github.com/hntruong/quizdeck/internal/dto"
)

func newAuthServiceForTest(userRepo *fakeUserRepo) AuthService {
	return NewAuthService(userRepo, &config.Config{JWTSecret: "test-secret"})
}

func TestAuthService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthServiceForTest(repo)

	user, err := svc.Register(dto.RegisterRequest{Username: "alice", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want %q", user.Username, "alice")
	}
	if user.PublicID == "" {
		t.Error("PublicID is empty")
	}
	if user.IsAdmin {
		t.Error("new users must not be admins")
	}

	stored, err := repo.FindByUsername("alice")
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.PasswordHash == "correct horse" {
		t.Error("password stored in plaintext")
	}
}

func TestAuthService_RegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthServiceForTest(repo)

	if _, err := svc.Register(dto.RegisterRequest{Username: "alice", Password: "pw-one"}); err != nil {
		t.Fatalf("first Register() error: %v", err)
	}
	_, err := svc.Register(dto.RegisterRequest{Username: "alice", Password: "pw-two"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("Register() error = %v, want ErrUsernameTaken", err)
	}
}

func TestAuthService_LoginAndVerifyToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthServiceForTest(repo)

	if _, err := svc.Register(dto.RegisterRequest{Username: "alice", Password: "correct horse"}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	token, err := svc.Login(dto.LoginRequest{Username: "alice", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if token.AccessToken == "" {
		t.Fatal("Login() returned empty access token")
	}

	identity, err := svc.VerifyToken(token.AccessToken)
	if err != nil {
		t.Fatalf("VerifyToken() error: %v", err)
	}
	if identity.Username != "alice" {
		t.Errorf("identity.Username = %q, want %q", identity.Username, "alice")
	}
	if identity.PublicID != token.User.PublicID {
		t.Errorf("identity.PublicID = %q, want %q", identity.PublicID, token.User.PublicID)
	}
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthServiceForTest(repo)

	if _, err := svc.Register(dto.RegisterRequest{Username: "alice", Password: "correct horse"}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if _, err := svc.Login(dto.LoginRequest{Username: "alice", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(dto.LoginRequest{Username: "nobody", Password: "whatever"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_LoginRejectsBannedUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthServiceForTest(repo)

	if _, err := svc.Register(dto.RegisterRequest{Username: "alice", Password: "correct horse"}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	repo.users["alice"].IsBanned = true

	if _, err := svc.Login(dto.LoginRequest{Username: "alice", Password: "correct horse"}); !errors.Is(err, ErrUserBanned) {
		t.Fatalf("Login() error = %v, want ErrUserBanned", err)
	}
}

func TestAuthService_VerifyTokenRejectsTampering(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthServiceForTest(repo)

	if _, err := svc.Register(dto.RegisterRequest{Username: "alice", Password: "correct horse"}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	token, err := svc.Login(dto.LoginRequest{Username: "alice", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	if _, err := svc.VerifyToken(token.AccessToken + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token: error = %v, want ErrInvalidToken", err)
	}
	if _, err := svc.VerifyToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token: error = %v, want ErrInvalidToken", err)
	}

	other := NewAuthService(repo, &config.Config{JWTSecret: "different-secret"})
	if _, err := other.VerifyToken(token.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign-key token: error = %v, want ErrInvalidToken", err)
	}
}

func TestAuthService_VerifyTokenHonorsBan(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthServiceForTest(repo)

	if _, err := svc.Register(dto.RegisterRequest{Username: "alice", Password: "correct horse"}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	token, err := svc.Login(dto.LoginRequest{Username: "alice", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	// A ban lands on the next request, not at token expiry.
	repo.users["alice"].IsBanned = true
	if _, err := svc.VerifyToken(token.AccessToken); !errors.Is(err, ErrUserBanned) {
		t.Fatalf("VerifyToken() error = %v, want ErrUserBanned", err)
	}
}
