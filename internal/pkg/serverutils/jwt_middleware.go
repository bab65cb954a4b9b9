package serverutils

import (
	"context"
	"crypto/rsa"
	"fmt"
	"strings"

	"career-compass-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	LocalExternalUserID = "external_user_id"
	LocalIdentity       = "identity"
	LocalUserID         = "user_id"
)

type JwtConfig struct {
	PublicKeyPEM string
	Secret       string
	Issuer       string
}

// IdentityClaims are the claims read from identity provider tokens.
type IdentityClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// NewJwtMiddleware verifies bearer tokens with RS256 when a public key is configured,
// HS256 with the shared secret otherwise.
func NewJwtMiddleware(cfg JwtConfig) (fiber.Handler, error) {
	var (
		key    interface{}
		method string
	)
	switch {
	case cfg.PublicKeyPEM != "":
		pub, err := parsePublicKey(cfg.PublicKeyPEM)
		if err != nil {
			return nil, err
		}
		key, method = pub, jwt.SigningMethodRS256.Alg()
	case cfg.Secret != "":
		key, method = []byte(cfg.Secret), jwt.SigningMethodHS256.Alg()
	default:
		return nil, fmt.Errorf("jwt: either a public key or a secret is required")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{method}), jwt.WithExpirationRequired()}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			return apperror.Unauthorized("Missing token")
		}
		tokenStr := authHeader[7:]

		claims := &IdentityClaims{}
		token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return key, nil
		})
		if err != nil || !token.Valid {
			return apperror.Unauthorized("Invalid token")
		}
		if claims.Subject == "" {
			return apperror.Unauthorized("Invalid claims")
		}

		ctx.Locals(LocalExternalUserID, claims.Subject)
		ctx.Locals(LocalIdentity, *claims)
		return ctx.Next()
	}, nil
}

func parsePublicKey(pemText string) (*rsa.PublicKey, error) {
	// env files often carry the key with escaped newlines
	pemText = strings.ReplaceAll(pemText, `\n`, "\n")
	pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemText))
	if err != nil {
		return nil, fmt.Errorf("jwt: invalid public key: %w", err)
	}
	return pub, nil
}

// ResolveUserFunc maps a verified identity to the local user id, creating the user when needed.
type ResolveUserFunc func(ctx context.Context, identity IdentityClaims) (string, error)

// UserResolver must run after the JWT middleware.
func UserResolver(resolve ResolveUserFunc) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		identity, ok := ctx.Locals(LocalIdentity).(IdentityClaims)
		if !ok {
			return apperror.Unauthorized("Unauthorized")
		}

		userID, err := resolve(ctx.UserContext(), identity)
		if err != nil {
			return err
		}

		ctx.Locals(LocalUserID, userID)
		return ctx.Next()
	}
}

// UserID reads the local user id set by UserResolver.
func UserID(ctx *fiber.Ctx) (string, error) {
	id, ok := ctx.Locals(LocalUserID).(string)
	if !ok || id == "" {
		return "", apperror.Unauthorized("Unauthorized")
	}
	return id, nil
}
