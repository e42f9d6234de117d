package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4" // Import JWT library
	"golang.org/x/crypto/bcrypt"   // Import bcrypt
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid username or password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// RoleAdministrator is the only role; it is carried in the token so the
// middleware can reject tokens minted for anything else.
const RoleAdministrator = "administrator"

// TokenIssuer is the JWT "iss" claim.
const TokenIssuer = "gym-tally"

// AdminCredentials is the single operator account.
type AdminCredentials struct {
	Username     string
	PasswordHash string // bcrypt
}

// --- Service Interface ---
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error)
	GetJWTSecret() string
}

// --- Service Implementation ---

// authService implements the AuthService interface.
type authService struct {
	admin         AdminCredentials
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(admin AdminCredentials, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 8 // One working shift
	}
	return &authService{
		admin:         admin,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// HashPassword returns the bcrypt hash stored in admin.password_hash.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Login verifies the administrator credentials and issues a JWT.
func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	// 1. Basic Input Validation
	if username == "" || password == "" {
		return "", time.Time{}, ErrAuthenticationFailed
	}

	// 2. Compare against the configured account. Always run bcrypt so a wrong
	// username costs the same as a wrong password.
	hashErr := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password))
	if username != s.admin.Username || hashErr != nil {
		return "", time.Time{}, ErrAuthenticationFailed
	}

	// 3. Authentication successful - Generate JWT
	token, expiresAt, err := s.generateJWT(username)
	if err != nil {
		return "", time.Time{}, ErrTokenGeneration
	}
	return token, expiresAt, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given operator.
func (s *authService) generateJWT(username string) (string, time.Time, error) {
	now := time.Now()
	expirationTime := now.Add(s.jwtExpiration)
	claims := &jwtClaims{
		Role: RoleAdministrator,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signedToken, expirationTime, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
