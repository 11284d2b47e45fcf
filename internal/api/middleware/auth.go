package middleware

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/subtle"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/issuance-vault/ledger/internal/api/shared/errors"
	"github.com/issuance-vault/ledger/internal/domain"
	"github.com/issuance-vault/ledger/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	PRINCIPAL_KEY  contextKey = "principal"
	JWT_CLAIMS_KEY contextKey = "jwt_claims"
)

const (
	AUTH_TYPE_JWT    = "jwt"
	AUTH_TYPE_APIKEY = "apikey"

	// jwtLeeway absorbs clock skew between the token issuer and the API
	jwtLeeway = 30 * time.Second
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	APIKeys      []string
}

// AuthResult holds the result of authentication
type AuthResult struct {
	Success     bool
	AuthType    string // AUTH_TYPE_JWT or AUTH_TYPE_APIKEY
	Claims      *jwt.RegisteredClaims
	AuthSubject string
	Error       error
}

// Principal returns the ledger principal of a successful authentication
func (r AuthResult) Principal() domain.Principal {
	return domain.Principal{AuthType: r.AuthType, Subject: r.AuthSubject}
}

// authenticator holds the credentials parsed once from AuthConfig
type authenticator struct {
	publicKey    *rsa.PublicKey
	publicKeyErr error
	apiKeyHashes [][sha256.Size]byte
}

func newAuthenticator(cfg AuthConfig) *authenticator {
	a := &authenticator{}
	if cfg.JWTPublicKey == "" {
		a.publicKeyErr = errors.New("JWT public key not configured")
	} else {
		a.publicKey, a.publicKeyErr = parseRSAPublicKey(cfg.JWTPublicKey)
	}
	for _, key := range cfg.APIKeys {
		if key != "" {
			a.apiKeyHashes = append(a.apiKeyHashes, sha256.Sum256([]byte(key)))
		}
	}
	return a
}

// Authenticate validates an Authorization header of the form "Bearer <jwt>" or "ApiKey <key>"
func Authenticate(authHeader string, cfg AuthConfig) AuthResult {
	return newAuthenticator(cfg).authenticate(authHeader)
}

func (a *authenticator) authenticate(authHeader string) AuthResult {
	if authHeader == "" {
		return AuthResult{Error: errors.New("missing Authorization header")}
	}

	scheme, credentials, ok := strings.Cut(authHeader, " ")
	if !ok || credentials == "" {
		return AuthResult{Error: errors.New("invalid Authorization header format")}
	}

	switch strings.ToLower(scheme) {
	case "bearer":
		claims, err := a.validateJWT(credentials)
		if err != nil {
			return AuthResult{Error: err}
		}
		return AuthResult{Success: true, AuthType: AUTH_TYPE_JWT, Claims: claims, AuthSubject: claims.Subject}

	case "apikey":
		if err := a.validateAPIKey(credentials); err != nil {
			return AuthResult{Error: err}
		}
		return AuthResult{Success: true, AuthType: AUTH_TYPE_APIKEY}

	default:
		return AuthResult{Error: fmt.Errorf("unsupported authorization type: %s", scheme)}
	}
}

// Auth returns a gin middleware accepting either a JWT (Bearer) or an API key.
// The principal is stored in the gin context and in the request context for journal attribution.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	a := newAuthenticator(cfg)
	if a.publicKeyErr != nil && cfg.JWTPublicKey != "" {
		logger.Warn("Bearer authentication disabled", zap.Error(a.publicKeyErr))
	}

	return func(c *gin.Context) {
		result := a.authenticate(c.GetHeader("Authorization"))
		if !result.Success {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierrors.NewUnauthorizedError("Authentication failed", result.Error.Error()))
			return
		}

		if result.Claims != nil {
			c.Set(JWT_CLAIMS_KEY, result.Claims)
		}

		principal := result.Principal()
		c.Set(PRINCIPAL_KEY, principal)
		ctx := domain.WithPrincipal(c.Request.Context(), principal)
		ctx = logger.WithFields(ctx, zap.String("actor", principal.Actor()))
		c.Request = c.Request.WithContext(ctx)

		logger.DebugCtx(ctx, "Authenticated", zap.String("auth_type", result.AuthType))

		c.Next()
	}
}

// GetPrincipal returns the principal stored by Auth, or the zero principal
func GetPrincipal(c *gin.Context) domain.Principal {
	if v, ok := c.Get(PRINCIPAL_KEY); ok {
		if p, ok := v.(domain.Principal); ok {
			return p
		}
	}
	return domain.Principal{}
}

// validateJWT verifies an RSA signed token and its time based claims
func (a *authenticator) validateJWT(tokenString string) (*jwt.RegisteredClaims, error) {
	if a.publicKeyErr != nil {
		return nil, a.publicKeyErr
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return a.publicKey, nil
		},
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
		jwt.WithLeeway(jwtLeeway),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	return claims, nil
}

// validateAPIKey compares digests in constant time so response timing does not leak key prefixes
func (a *authenticator) validateAPIKey(apiKey string) error {
	if len(a.apiKeyHashes) == 0 {
		return errors.New("no API keys configured")
	}

	digest := sha256.Sum256([]byte(apiKey))
	match := 0
	for i := range a.apiKeyHashes {
		match |= subtle.ConstantTimeCompare(digest[:], a.apiKeyHashes[i][:])
	}
	if match != 1 {
		return errors.New("invalid API key")
	}
	return nil
}

// parseRSAPublicKey parses an RSA public key in PKIX or PKCS1 PEM form
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
