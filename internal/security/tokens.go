package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed, expired, or signed
// with the wrong key or method.
var ErrInvalidToken = errors.New("invalid token")

// PartnerClaims holds JWT claims for a partner API token. Subject is the
// partner key.
type PartnerClaims struct {
	jwt.RegisteredClaims
	Scopes []string `json:"scopes"`
	Tier   string   `json:"tier"`
}

// TokenProvider issues and validates partner API tokens using HS256 with a
// shared secret.
type TokenProvider struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenProvider returns a TokenProvider signing with secret. issuer and
// audience are set on claims and validated on parse.
func NewTokenProvider(secret []byte, issuer, audience string, ttl time.Duration) *TokenProvider {
	return &TokenProvider{secret: secret, issuer: issuer, audience: audience, ttl: ttl}
}

// IssuePartnerToken issues a short-lived token for the partner. Returns the
// token string and its expiration time.
func (p *TokenProvider) IssuePartnerToken(partnerKey string, scopes []string, tier string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(p.ttl)
	claims := PartnerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   partnerKey,
			Issuer:    p.issuer,
			Audience:  jwt.ClaimStrings{p.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Scopes: scopes,
		Tier:   tier,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ValidatePartnerToken parses and validates a partner token (signature, exp,
// iss, aud). Returns the partner key and claims, or ErrInvalidToken.
func (p *TokenProvider) ValidatePartnerToken(tokenString string) (string, *PartnerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PartnerClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil {
		return "", nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*PartnerClaims)
	if !ok || !token.Valid {
		return "", nil, ErrInvalidToken
	}
	if claims.Issuer != p.issuer {
		return "", nil, ErrInvalidToken
	}
	audOK := false
	for _, a := range claims.Audience {
		if a == p.audience {
			audOK = true
			break
		}
	}
	if !audOK || claims.Subject == "" {
		return "", nil, ErrInvalidToken
	}
	return claims.Subject, claims, nil
}
