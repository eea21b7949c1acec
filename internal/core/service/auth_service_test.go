package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/assignhub/assignment-api/internal/core/domain"
)

// stubUserRepo is an in-memory ports.Repository[domain.User] supporting the
// flat equality filters the services use.
type stubUserRepo struct {
	users     []*domain.User
	createErr error
	findErr   error
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := cloneUser(user)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	r.users = append(r.users, stored)
	return cloneUser(stored), nil
}

func (r *stubUserRepo) Find(_ context.Context, filters map[string]any, andCond bool, _ ...string) ([]*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if len(filters) == 0 {
		return nil, nil
	}
	results := make([]*domain.User, 0)
	for _, u := range r.users {
		if matchUser(u, filters, andCond) {
			results = append(results, cloneUser(u))
		}
	}
	return results, nil
}

func matchUser(u *domain.User, filters map[string]any, andCond bool) bool {
	matched := andCond
	for field, value := range filters {
		var ok bool
		switch field {
		case "id":
			ok = u.ID == value.(uuid.UUID)
		case "username":
			ok = u.Username == value.(string)
		case "email":
			ok = u.Email == value.(string)
		}
		if andCond {
			matched = matched && ok
		} else {
			matched = matched || ok
		}
	}
	return matched
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User, updates map[string]any, _ ...string) (*domain.User, error) {
	id := user.ID
	for _, stored := range r.users {
		if stored.ID != id {
			continue
		}
		for field, value := range updates {
			switch field {
			case "first_name":
				stored.FirstName = value.(string)
			case "last_name":
				stored.LastName = value.(string)
			case "email":
				stored.Email = value.(string)
			case "active":
				stored.Active = value.(bool)
			case "project_id":
				pid, _ := value.(*uuid.UUID)
				stored.ProjectID = pid
			}
		}
		return cloneUser(stored), nil
	}
	return nil, domain.ErrRepository
}

func (r *stubUserRepo) ListAll(_ context.Context, _ ...string) ([]*domain.User, error) {
	results := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		results = append(results, cloneUser(u))
	}
	return results, nil
}

func (r *stubUserRepo) Delete(_ context.Context, user *domain.User) error {
	for i, stored := range r.users {
		if stored.ID == user.ID {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return domain.ErrRepository
}

// stubThrottle counts failures in memory.
type stubThrottle struct {
	failures map[string]int
	blocked  bool
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int)}
}

func (t *stubThrottle) TooMany(_ context.Context, _ string) (bool, error) {
	return t.blocked, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	delete(t.failures, username)
	return nil
}

func newTestAuthService(t *testing.T, repo *stubUserRepo, throttle LoginThrottle) *AuthService {
	t.Helper()
	svc, err := NewAuthService(repo, throttle, "secret", "HS256", time.Hour, 4, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc
}

func seedUser(t *testing.T, svc *AuthService, repo *stubUserRepo, username, password string, active bool) *domain.User {
	t.Helper()
	digest, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Username:       username,
		HashedPassword: digest,
		Email:          username + "@example.com",
		Role:           domain.RoleEngineer,
		Active:         active,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestNewAuthService_UnknownAlgorithm(t *testing.T) {
	if _, err := NewAuthService(&stubUserRepo{}, nil, "secret", "XX999", time.Hour, 4, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unknown algorithm")
	}
}

func TestAuthService_HashVerifyRoundTrip(t *testing.T) {
	svc := newTestAuthService(t, &stubUserRepo{}, nil)

	digest, err := svc.HashPassword("testPassword")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if digest == "testPassword" {
		t.Fatalf("expected digest, got plaintext")
	}

	ok, err := svc.VerifyPassword("testPassword", digest)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = svc.VerifyPassword("wrongPassword", digest)
	if err != nil {
		t.Fatalf("mismatch must not be an error: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(t, &stubUserRepo{}, nil)
	user := &domain.User{ID: uuid.New(), Username: "johndoee", Admin: true}

	token, err := svc.CreateToken(user)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	data, err := svc.DecodeToken(token)
	if err != nil {
		t.Fatalf("DecodeToken: %v", err)
	}
	if data.Username != "johndoee" || !data.Admin || data.ID != user.ID {
		t.Fatalf("unexpected token data: %+v", data)
	}
}

func TestAuthService_DecodeToken_Expired(t *testing.T) {
	svc := newTestAuthService(t, &stubUserRepo{}, nil)

	claims := jwt.MapClaims{
		"sub":   "johndoee",
		"admin": false,
		"id":    uuid.New().String(),
		"exp":   time.Now().Add(-time.Minute).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.DecodeToken(signed); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthService_DecodeToken_WrongAlgorithmRejected(t *testing.T) {
	svc := newTestAuthService(t, &stubUserRepo{}, nil)

	claims := jwt.MapClaims{
		"sub":   "johndoee",
		"admin": false,
		"id":    uuid.New().String(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.DecodeToken(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthService_DecodeToken_MissingClaims(t *testing.T) {
	svc := newTestAuthService(t, &stubUserRepo{}, nil)

	claims := jwt.MapClaims{
		"sub": "johndoee",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.DecodeToken(signed); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := &stubUserRepo{}
	throttle := newStubThrottle()
	svc := newTestAuthService(t, repo, throttle)
	seedUser(t, svc, repo, "johndoee", "s3cretPass", true)

	token, err := svc.Login(context.Background(), "johndoee", "s3cretPass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
}

func TestAuthService_Login_CaseAndSpaceNormalized(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestAuthService(t, repo, nil)
	seedUser(t, svc, repo, "johndoee", "s3cretPass", true)

	if _, err := svc.Login(context.Background(), "  JohnDoee ", "s3cretPass"); err != nil {
		t.Fatalf("expected normalized login to succeed, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := &stubUserRepo{}
	throttle := newStubThrottle()
	svc := newTestAuthService(t, repo, throttle)
	seedUser(t, svc, repo, "johndoee", "s3cretPass", true)

	if _, err := svc.Login(context.Background(), "johndoee", "badPass123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures["johndoee"] != 1 {
		t.Fatalf("expected failure recorded, got %d", throttle.failures["johndoee"])
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := newTestAuthService(t, &stubUserRepo{}, nil)

	if _, err := svc.Login(context.Background(), "ghostxyz", "whatever1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestAuthService(t, repo, nil)
	seedUser(t, svc, repo, "johndoee", "s3cretPass", false)

	if _, err := svc.Login(context.Background(), "johndoee", "s3cretPass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive user, got %v", err)
	}
}

func TestAuthService_Login_NoThrottleConfigured(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestAuthService(t, repo, nil)
	seedUser(t, svc, repo, "johndoee", "s3cretPass", true)

	if _, err := svc.Login(context.Background(), "johndoee", "badPass123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "johndoee", "s3cretPass"); err != nil {
		t.Fatalf("expected login without a throttle to succeed, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := &stubUserRepo{}
	throttle := newStubThrottle()
	throttle.blocked = true
	svc := newTestAuthService(t, repo, throttle)
	seedUser(t, svc, repo, "johndoee", "s3cretPass", true)

	if _, err := svc.Login(context.Background(), "johndoee", "s3cretPass"); !errors.Is(err, domain.ErrLoginThrottled) {
		t.Fatalf("expected ErrLoginThrottled, got %v", err)
	}
}

func TestAuthService_Login_SuccessResetsThrottle(t *testing.T) {
	repo := &stubUserRepo{}
	throttle := newStubThrottle()
	svc := newTestAuthService(t, repo, throttle)
	seedUser(t, svc, repo, "johndoee", "s3cretPass", true)

	_, _ = svc.Login(context.Background(), "johndoee", "badPass123")
	if throttle.failures["johndoee"] != 1 {
		t.Fatalf("expected one failure")
	}

	if _, err := svc.Login(context.Background(), "johndoee", "s3cretPass"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, ok := throttle.failures["johndoee"]; ok {
		t.Fatalf("expected throttle reset after successful login")
	}
}
