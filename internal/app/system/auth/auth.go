// internal/app/system/auth/auth.go
//
// Bearer-token authentication. Tokens are HS256 JWTs whose subject is the
// user's ObjectID; Authenticate verifies the token and loads a fresh user
// record on every request so role changes take effect immediately.
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joblane/joblane/internal/app/system/apperr"
	"github.com/joblane/joblane/internal/app/system/respond"
	"github.com/joblane/joblane/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserFinder loads a user by ID. Satisfied by the user store; tests
// substitute a stub.
type UserFinder interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user placed in context by
// Authenticate, and a found flag.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*models.User)
	return u, ok
}

// Manager issues and verifies tokens.
type Manager struct {
	secret []byte
	expiry time.Duration
	users  UserFinder
	log    *zap.Logger
}

func NewManager(secret string, expiry time.Duration, users UserFinder, logger *zap.Logger) *Manager {
	return &Manager{secret: []byte(secret), expiry: expiry, users: users, log: logger}
}

// IssueToken signs a token for the given user ID.
func (m *Manager) IssueToken(userID primitive.ObjectID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// VerifyToken parses and validates a raw token, returning the subject
// user ID. Expired or malformed tokens fail here.
func (m *Manager) VerifyToken(raw string) (primitive.ObjectID, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.Unauthorized, "unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, apperr.Wrap(apperr.Unauthorized, err, "invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return primitive.NilObjectID, apperr.New(apperr.Unauthorized, "invalid or expired token")
	}
	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return primitive.NilObjectID, apperr.Wrap(apperr.Unauthorized, err, "invalid or expired token")
	}
	return id, nil
}

// Authenticate rejects requests without a valid bearer token and injects
// the authenticated user into the request context.
func (m *Manager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			respond.Error(w, m.log, apperr.New(apperr.Unauthorized, "log in first to access this resource"))
			return
		}

		userID, err := m.VerifyToken(raw)
		if err != nil {
			respond.Error(w, m.log, err)
			return
		}

		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil {
			respond.Error(w, m.log, apperr.Wrap(apperr.Unauthorized, err, "invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows only users whose role is in the given set. Must run
// after Authenticate.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				respond.Fail(w, http.StatusUnauthorized, "log in first to access this resource")
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				respond.Fail(w, http.StatusForbidden,
					"role "+u.Role+" is not allowed to access this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
