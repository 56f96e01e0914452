package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or
// claim checks.
var ErrInvalidToken = errors.New("invalid viewer token")

// ViewerToken is a signed JWT granting read access to the viewer API.
type ViewerToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewViewerToken signs an HS256 JWT for subject that expires after ttl. The
// claims are the standard sub, exp and iat plus scope "viewer".
func NewViewerToken(secret, subject string, ttl time.Duration) (ViewerToken, error) {
	if secret == "" {
		return ViewerToken{}, errors.New("viewer secret must not be empty")
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":   subject,
		"scope": "viewer",
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return ViewerToken{}, err
	}
	return ViewerToken{Token: signed, Exp: exp}, nil
}

// ParseViewerToken verifies raw against secret and returns its subject.
func ParseViewerToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// only HMAC; anything else is a forged header
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || claims["scope"] != "viewer" {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	return sub, nil
}
