package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/aliveland/market-aggregator/internal/api/shared/errors"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	AUTH_TYPE_KEY    contextKey = "auth_type"
	AUTH_SUBJECT_KEY contextKey = "auth_subject"
)

const (
	AuthTypeJWT    = "jwt"
	AuthTypeAPIKey = "apikey"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	APIKeys      []string
}

// AuthResult holds the result of authentication
type AuthResult struct {
	AuthType string
	// AuthSubject is the checksummed wallet address of a JWT, empty for API keys
	AuthSubject string
}

// Authenticator checks Authorization headers against a fixed key set.
// The JWT public key is parsed once; a broken key only fails bearer requests.
type Authenticator struct {
	publicKey *rsa.PublicKey
	keyErr    error
	apiKeys   map[string]bool
}

// NewAuthenticator prepares the key material of cfg
func NewAuthenticator(cfg AuthConfig) *Authenticator {
	a := &Authenticator{apiKeys: make(map[string]bool, len(cfg.APIKeys))}
	for _, key := range cfg.APIKeys {
		if key != "" {
			a.apiKeys[key] = true
		}
	}

	if cfg.JWTPublicKey == "" {
		a.keyErr = errors.New("JWT public key not configured")
	} else if a.publicKey, a.keyErr = parseRSAPublicKey(cfg.JWTPublicKey); a.keyErr != nil {
		logger.Warn("JWT authentication disabled", zap.Error(a.keyErr))
		a.keyErr = fmt.Errorf("failed to parse RSA public key: %w", a.keyErr)
	}
	return a
}

// Authenticate validates an Authorization header of the form "Bearer <jwt>" or
// "ApiKey <key>". The subject of a JWT must be the wallet address it was issued to.
func (a *Authenticator) Authenticate(authHeader string) (AuthResult, error) {
	if authHeader == "" {
		return AuthResult{}, errors.New("missing Authorization header")
	}

	scheme, credentials, ok := strings.Cut(authHeader, " ")
	if !ok {
		return AuthResult{}, errors.New("invalid Authorization header format")
	}

	switch strings.ToLower(scheme) {
	case "bearer":
		subject, err := a.validateJWT(credentials)
		if err != nil {
			return AuthResult{}, err
		}
		return AuthResult{AuthType: AuthTypeJWT, AuthSubject: subject}, nil

	case "apikey":
		if len(a.apiKeys) == 0 {
			return AuthResult{}, errors.New("no API keys configured")
		}
		if !a.apiKeys[credentials] {
			return AuthResult{}, errors.New("invalid API key")
		}
		return AuthResult{AuthType: AuthTypeAPIKey}, nil

	default:
		return AuthResult{}, fmt.Errorf("unsupported authorization type: %s", scheme)
	}
}

// Auth returns a gin middleware accepting a JWT (Bearer) or an API key
func Auth(cfg AuthConfig) gin.HandlerFunc {
	authenticator := NewAuthenticator(cfg)

	return func(c *gin.Context) {
		result, err := authenticator.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.NewUnauthorizedError("Authentication failed", err.Error()))
			return
		}

		logger.DebugCtx(c.Request.Context(), "Authenticated request",
			zap.String("auth_type", result.AuthType),
			zap.String("subject", result.AuthSubject),
		)
		c.Set(AUTH_TYPE_KEY, result.AuthType)
		if result.AuthSubject != "" {
			c.Set(AUTH_SUBJECT_KEY, result.AuthSubject)
		}
		c.Next()
	}
}

// AuthSubject returns the wallet address the request was authenticated as, or ""
func AuthSubject(c *gin.Context) string {
	subject, _ := c.Get(AUTH_SUBJECT_KEY)
	s, _ := subject.(string)
	return s
}

// validateJWT checks the RSA signature and the time claims, and returns the checksummed subject
func (a *Authenticator) validateJWT(tokenString string) (string, error) {
	if a.keyErr != nil {
		return "", a.keyErr
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.publicKey, nil
	}, jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}))
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if claims.Subject == "" {
		return "", nil
	}
	if !domain.IsValidAddress(claims.Subject) {
		return "", fmt.Errorf("token subject is not a wallet address: %s", claims.Subject)
	}
	return domain.NormalizeAddress(claims.Subject), nil
}

// parseRSAPublicKey parses a PKIX or PKCS1 RSA public key from PEM
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}
	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}
	return rsaKey, nil
}
