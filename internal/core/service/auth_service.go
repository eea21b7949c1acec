package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/assignhub/assignment-api/internal/api/metrics"
	"github.com/assignhub/assignment-api/internal/core/domain"
	"github.com/assignhub/assignment-api/internal/core/ports"
)

// LoginThrottle abstracts the failed-login counter (Redis). A nil throttle
// disables throttling.
type LoginThrottle interface {
	TooMany(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements password hashing and the session token lifecycle.
type AuthService struct {
	users    ports.Repository[domain.User]
	throttle LoginThrottle
	secret   []byte
	method   jwt.SigningMethod
	tokenTTL time.Duration
	cost     int
	log      zerolog.Logger
}

// NewAuthService builds the auth engine. algorithm must name a registered JWT
// signing method (e.g. HS256); an unknown name is a configuration error.
func NewAuthService(
	users ports.Repository[domain.User],
	throttle LoginThrottle,
	secret, algorithm string,
	tokenTTL time.Duration,
	bcryptCost int,
	log zerolog.Logger,
) (*AuthService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown JWT algorithm %q", algorithm)
	}
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:    users,
		throttle: throttle,
		secret:   []byte(secret),
		method:   method,
		tokenTTL: tokenTTL,
		cost:     bcryptCost,
		log:      log,
	}, nil
}

// HashPassword returns the bcrypt digest of plain at the configured cost.
func (s *AuthService) HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrHashing, err)
	}
	return string(digest), nil
}

// VerifyPassword reports whether plain matches digest. A mismatch is not an
// error; only a failure of the primitive itself is.
func (s *AuthService) VerifyPassword(plain, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", domain.ErrHashing, err)
	}
}

// CreateToken issues a signed token with subject, admin flag, id, and an
// expiry of now plus the configured TTL.
func (s *AuthService) CreateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.Username,
		"admin": user.Admin,
		"id":    user.ID.String(),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	metrics.TokensIssuedTotal.Inc()
	return signed, nil
}

// DecodeToken verifies signature and expiry, then extracts the required
// claims. Tokens signed with any algorithm other than the configured one are
// rejected.
func (s *AuthService) DecodeToken(token string) (*ports.TokenData, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	admin, adminOK := claims["admin"].(bool)
	idStr, _ := claims["id"].(string)
	if sub == "" || !adminOK || idStr == "" {
		return nil, domain.ErrInvalidCredentials
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &ports.TokenData{ID: id, Username: sub, Admin: admin}, nil
}

// Login authenticates by username and password. Usernames are stored
// lowercase, so the lookup is case-insensitive from the caller's perspective.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = domain.NormalizeUsername(username)
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooMany(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed, proceeding")
		} else if blocked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return "", domain.ErrLoginThrottled
		}
	}

	users, err := s.users.Find(ctx, map[string]any{"username": username}, true)
	if err != nil {
		return "", err
	}
	if len(users) == 0 {
		return "", s.failLogin(ctx, username)
	}

	user := users[0]
	if !user.Active {
		return "", s.failLogin(ctx, username)
	}

	ok, err := s.VerifyPassword(password, user.HashedPassword)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", s.failLogin(ctx, username)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login throttle")
		}
	}

	token, err := s.CreateToken(user)
	if err != nil {
		return "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", username).Msg("user logged in")
	return token, nil
}

func (s *AuthService) failLogin(ctx context.Context, username string) error {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
		}
	}
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	return domain.ErrInvalidCredentials
}
