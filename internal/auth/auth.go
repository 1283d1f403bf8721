package auth

import (
	"errors"
	"time"

	"github.com/danindra/workforce-scheduling/internal"
	"github.com/golang-jwt/jwt/v5"
)

// AuthResult is what a successful sign-in produces: the bearer token and the
// principal it activates.
type AuthResult struct {
	AccessToken string              `json:"access_token"`
	ExpiresAt   time.Time           `json:"expires_at"`
	Principal   *internal.Principal `json:"principal"`
}

// Claims are the JWT claims carried by a session bearer token. The session id
// references the persisted principal snapshot; the token alone never
// authorizes anything.
type Claims struct {
	SessionID string `json:"session_id"`
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates session bearer tokens.
type TokenGenerator interface {
	GenerateToken(sessionID string, userID int64, email string) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
	ErrMalformedSession   = errors.New("malformed session payload")
	ErrNoDemoAccount      = errors.New("no seeded account for requested role")
)

type JWTTokenGenerator struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret: []byte(secret),
		TTL:    ttl,
	}
}

func (j *JWTTokenGenerator) GenerateToken(sessionID string, userID int64, email string) (string, time.Time, error) {
	expiresAt := time.Now().Add(j.TTL)

	claims := &Claims{
		SessionID: sessionID,
		UserID:    userID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   sessionID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
