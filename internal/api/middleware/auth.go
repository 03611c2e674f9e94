package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	roleKey      contextKey = "role"
	requestIDKey contextKey = "request_id"
)

const (
	msgMissingToken = "Unauthenticated"
	msgInvalidToken = "Invalid or expired token"
)

var (
	ErrMissingToken = errors.New("auth: missing bearer token")
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims полезная нагрузка токена: sub - ID пользователя, role - его роль
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator проверяет HS256 bearer-токены
type Authenticator struct {
	secret []byte
	issuer string
	logger Logger
}

func NewAuthenticator(secret, issuer string, logger Logger) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		issuer: issuer,
		logger: logger,
	}
}

// Middleware кладет ID и роль пользователя в контекст, без валидного токена отвечает 401
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, role, err := a.authenticate(r.Header.Get("Authorization"))
		if err != nil {
			a.logger.Warn("%s %s - authentication failed: %v", r.Method, r.URL.Path, err)
			if errors.Is(err, ErrMissingToken) {
				handlers.RespondUnauthorized(w, msgMissingToken)
			} else {
				handlers.RespondUnauthorized(w, msgInvalidToken)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), userID, role)))
	})
}

func (a *Authenticator) authenticate(header string) (int64, domain.Role, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return 0, "", ErrMissingToken
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), &claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, "", fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}

	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return 0, "", fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	return userID, role, nil
}

// IssueToken подписывает токен для пользователя (используется CLI и тестами)
func IssueToken(secret, issuer string, userID int64, role domain.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// WithIdentity возвращает контекст с ID и ролью пользователя
func WithIdentity(ctx context.Context, userID int64, role domain.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// GetRole извлекает роль пользователя из контекста
func GetRole(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(roleKey).(domain.Role)
	return role, ok
}
