package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/domain"
	"github.com/streamhive/video-service/dto"
)

const testSecret = "test-secret"

func newUserFixture() (*fakeUserRepo, *cascadeFixture, UserService) {
	users := &fakeUserRepo{users: map[string]*domain.User{}}
	cascade := newCascadeFixture()
	svc := NewUserService(users, cascade.svc, testSecret, time.Hour)
	return users, cascade, svc
}

func seedUser(users *fakeUserRepo, id, username, email, password string) *domain.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	user := &domain.User{
		ID:       id,
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}
	users.users[id] = user
	return user
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	users, _, svc := newUserFixture()

	user, err := svc.Register(context.Background(), &dto.RegisterUserRequest{
		Username: "Alice",
		Email:    "Alice@Example.COM",
		FullName: "Alice A",
		Password: "supersecret",
		Avatar:   "avatar.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" || user.Email != "alice@example.com" {
		t.Fatalf("expected lowercased identity, got %s / %s", user.Username, user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected USER role, got %s", user.Role)
	}
	stored := users.users[user.ID]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("supersecret")) != nil {
		t.Fatalf("stored password is not a valid bcrypt hash of the input")
	}
}

func TestLoginByEmail(t *testing.T) {
	users, _, svc := newUserFixture()
	seedUser(users, "u1", "alice", "a@b.com", "pw123456")

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "a@b.com", Password: "pw123456"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.User.ID != "u1" {
		t.Fatalf("expected user u1, got %s", resp.User.ID)
	}

	token, err := jwt.Parse(resp.AccessToken, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("access token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != "u1" {
		t.Fatalf("expected sub claim u1, got %v", claims["sub"])
	}
}

func TestLoginByUsername(t *testing.T) {
	users, _, svc := newUserFixture()
	seedUser(users, "u2", "bob", "b@c.com", "pw123456")

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "bob", Password: "pw123456"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.User.ID != "u2" {
		t.Fatalf("expected user u2, got %s", resp.User.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users, _, svc := newUserFixture()
	seedUser(users, "u1", "alice", "a@b.com", "rightpw")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "a@b.com", Password: "wrongpw"})
	if apperror.CodeOf(err) != apperror.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownUserIsUnauthorized(t *testing.T) {
	_, _, svc := newUserFixture()

	// an unknown identity must not be distinguishable from a bad password
	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@b.com", Password: "whatever"})
	if apperror.CodeOf(err) != apperror.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginRequiresIdentifier(t *testing.T) {
	_, _, svc := newUserFixture()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Password: "pw"})
	if apperror.CodeOf(err) != apperror.CodeInvalid {
		t.Fatalf("expected invalid, got %v", err)
	}
}

func TestDeleteUserRunsCascade(t *testing.T) {
	users, cascade, svc := newUserFixture()
	seedUser(users, "u1", "alice", "a@b.com", "pw")
	cascade.videos.videos["v1"] = &domain.Video{ID: "v1", Owner: "u1"}
	cascade.subscriptions.byUser["u1"] = 3
	cascade.views.byVideo["v1"] = 9

	result, err := svc.Delete(context.Background(), "u1", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := users.users["u1"]; ok {
		t.Fatalf("user document must be removed")
	}
	if result.Removed["videos"] != 1 || result.Removed["subscriptions"] != 3 || result.Removed["views"] != 9 {
		t.Fatalf("cascade result incomplete: %v", result.Removed)
	}
}

func TestDeleteUserRequiresSelfOrAdmin(t *testing.T) {
	users, _, svc := newUserFixture()
	seedUser(users, "victim", "victim", "v@b.com", "pw")
	seedUser(users, "other", "other", "o@b.com", "pw")
	admin := seedUser(users, "admin", "admin", "ad@b.com", "pw")
	admin.Role = domain.RoleAdmin

	_, err := svc.Delete(context.Background(), "other", "victim")
	if apperror.CodeOf(err) != apperror.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	if _, err := svc.Delete(context.Background(), "admin", "victim"); err != nil {
		t.Fatalf("admin must be allowed to delete: %v", err)
	}
}
