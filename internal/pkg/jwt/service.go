// Package jwt issues and verifies the HS256 access and refresh tokens used by
// the API and the websocket endpoint.
package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carries the user ID in both user_id and sub. TokenType keeps an
// access token from being replayed as a refresh token and vice versa.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	TokenType string    `json:"token_type"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	ValidateAccessToken(tokenString string) (Claims, error)
	ValidateRefreshToken(tokenString string) (Claims, error)
}

type Option func(*HMACService)

// WithIssuer stamps iss on issued tokens and requires it on verification.
func WithIssuer(iss string) Option {
	return func(s *HMACService) { s.issuer = iss }
}

// WithAudience stamps aud on issued tokens and requires it on verification.
func WithAudience(aud string) Option {
	return func(s *HMACService) { s.audience = aud }
}

type HMACService struct {
	accessSecret  []byte
	refreshSecret []byte

	accessExpiresIn  time.Duration
	refreshExpiresIn time.Duration

	issuer   string
	audience string

	now func() time.Time
}

func NewHMACService(accessSecret, refreshSecret string, accessExpiresIn, refreshExpiresIn time.Duration, opts ...Option) *HMACService {
	s := &HMACService{
		accessSecret:     []byte(accessSecret),
		refreshSecret:    []byte(refreshSecret),
		accessExpiresIn:  accessExpiresIn,
		refreshExpiresIn: refreshExpiresIn,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, email string) (string, error) {
	return s.generate(TokenTypeAccess, userID, email)
}

func (s *HMACService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.generate(TokenTypeRefresh, userID, "")
}

func (s *HMACService) ValidateAccessToken(tokenString string) (Claims, error) {
	return s.validate(TokenTypeAccess, tokenString)
}

func (s *HMACService) ValidateRefreshToken(tokenString string) (Claims, error) {
	return s.validate(TokenTypeRefresh, tokenString)
}

func (s *HMACService) generate(tokenType string, userID uuid.UUID, email string) (string, error) {
	secret, expIn, err := s.secretAndExpiry(tokenType)
	if err != nil {
		return "", err
	}
	if userID == uuid.Nil {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			NotBefore: jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(expIn)),
		},
	}
	if s.audience != "" {
		c.Audience = jwtlib.ClaimStrings{s.audience}
	}

	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(secret)
}

func (s *HMACService) validate(tokenType, tokenString string) (Claims, error) {
	secret, _, err := s.secretAndExpiry(tokenType)
	if err != nil {
		return Claims{}, err
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(func() time.Time { return s.now() }),
	}
	if s.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwtlib.WithAudience(s.audience))
	}

	var c Claims
	tok, err := jwtlib.NewParser(opts...).ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid || c.TokenType != tokenType || c.UserID == uuid.Nil {
		return Claims{}, ErrTokenInvalid
	}
	if c.Subject != c.UserID.String() {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}

func (s *HMACService) secretAndExpiry(tokenType string) ([]byte, time.Duration, error) {
	switch tokenType {
	case TokenTypeAccess:
		if len(s.accessSecret) == 0 || s.accessExpiresIn <= 0 {
			return nil, 0, ErrTokenInvalid
		}
		return s.accessSecret, s.accessExpiresIn, nil
	case TokenTypeRefresh:
		if len(s.refreshSecret) == 0 || s.refreshExpiresIn <= 0 {
			return nil, 0, ErrTokenInvalid
		}
		return s.refreshSecret, s.refreshExpiresIn, nil
	default:
		return nil, 0, ErrTokenInvalid
	}
}
