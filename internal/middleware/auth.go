package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"talentnest/internal/domain/access"
	"talentnest/internal/pkg/jwt"
	"talentnest/internal/pkg/response"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

var ErrUnresolved = errors.New("token not recognised")

// IdentityResolver maps a bearer token to the acting identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (access.Actor, error)
}

type ResolverFunc func(ctx context.Context, token string) (access.Actor, error)

func (f ResolverFunc) Resolve(ctx context.Context, token string) (access.Actor, error) {
	return f(ctx, token)
}

// JWTResolver accepts tokens issued by the local jwt service.
func JWTResolver(svc *jwt.Service) IdentityResolver {
	return ResolverFunc(func(_ context.Context, token string) (access.Actor, error) {
		claims, err := svc.ValidateToken(token)
		if err != nil {
			return access.Actor{}, err
		}
		role, err := access.ParseRole(claims.Role)
		if err != nil {
			return access.Actor{}, ErrUnresolved
		}
		return access.Actor{UserID: claims.UserID, Role: role}, nil
	})
}

// Chain tries each resolver in order and returns the first success.
func Chain(resolvers ...IdentityResolver) IdentityResolver {
	return ResolverFunc(func(ctx context.Context, token string) (access.Actor, error) {
		err := ErrUnresolved
		for _, r := range resolvers {
			if r == nil {
				continue
			}
			actor, rerr := r.Resolve(ctx, token)
			if rerr == nil {
				return actor, nil
			}
			err = rerr
		}
		return access.Actor{}, err
	})
}

// JWTAuth requires a valid bearer token.
func JWTAuth(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortError(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		actor, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		setActor(c, actor)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if actor, err := resolver.Resolve(c.Request.Context(), token); err == nil {
				setActor(c, actor)
			}
		}
		c.Next()
	}
}

// ActorFrom returns the identity attached by JWTAuth or OptionalAuth. The
// zero Actor means anonymous.
func ActorFrom(c *gin.Context) access.Actor {
	userID := c.GetInt64(ctxUserID)
	if userID == 0 {
		return access.Actor{}
	}
	return access.Actor{UserID: userID, Role: access.Role(c.GetString(ctxRole))}
}

func setActor(c *gin.Context, actor access.Actor) {
	c.Set(ctxUserID, actor.UserID)
	c.Set(ctxRole, actor.Role.String())
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
