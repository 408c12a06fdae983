package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaims = errors.New("invalid token claims")
)

const (
	DefaultSessionExpiry = 12 * time.Hour
	sessionTier          = "admin"
)

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// Claims identify the admin behind a dashboard session
type Claims struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	Tier    string `json:"tier"`
	jwt.RegisteredClaims
}

// JWTManager signs and checks admin session tokens (HS256)
type JWTManager struct {
	secret []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTManager(config JWTConfig) *JWTManager {
	if config.Expiry <= 0 {
		config.Expiry = DefaultSessionExpiry
	}
	return &JWTManager{
		secret: []byte(config.Secret),
		expiry: config.Expiry,
		issuer: config.Issuer,
		now:    time.Now,
	}
}

// GenerateAdminToken starts a dashboard session and returns the token with
// its expiry
func (j *JWTManager) GenerateAdminToken(adminID uuid.UUID, email string) (string, time.Time, error) {
	issued := j.now()
	expiresAt := issued.Add(j.expiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		AdminID: adminID.String(),
		Email:   email,
		Tier:    sessionTier,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   email,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken checks signature, issuer and expiry. Expired sessions get
// ErrExpiredToken so the dashboard can ask for a new login.
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithTimeFunc(j.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case !token.Valid || claims.Tier != sessionTier || claims.Email == "":
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
