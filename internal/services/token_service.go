package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"travelnest/internal/domain"
	"travelnest/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "travelnest-admin"

// DefaultTokenTTL is the lifetime of an admin bearer token.
const DefaultTokenTTL = 60 * time.Minute

var ErrTokenExpired = errors.New("token expired")

// AdminClaims identifies the admin a bearer token was issued to.
type AdminClaims struct {
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService signs and validates HS256 admin tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

// Generate issues a token for admin and returns it with its expiry.
func (s *TokenService) Generate(admin models.Admin) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := AdminClaims{
		AdminID:  admin.ID,
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(admin.ID, 10),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, exp, nil
}

// Validate checks signature, algorithm, issuer and expiry.
func (s *TokenService) Validate(token string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.UnauthorizedError{Msg: "token expired", Err: ErrTokenExpired}
		}
		return nil, domain.UnauthorizedError{Msg: "invalid token", Err: err}
	}
	if !parsed.Valid {
		return nil, domain.UnauthorizedError{Msg: "invalid token"}
	}
	return claims, nil
}
