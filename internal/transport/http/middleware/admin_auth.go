package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pribylovaa/go-govjobs/internal/pkg/log"
	apierrors "github.com/pribylovaa/go-govjobs/internal/transport/http/errors"
)

// AuthOptions - параметры проверки admin-токенов (HS256).
type AuthOptions struct {
	Secret   string
	Issuer   string
	Audience string
}

// AdminAuth пропускает запрос только с валидным Bearer JWT:
// подпись HS256, exp (leeway 5s), iss и aud из opts, непустой sub.
// sub кладётся в контекст (SubjectFrom).
func AdminAuth(opts AuthOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "transport/http/middleware/AdminAuth"

			sub, err := verify(bearer(r), opts)
			if err != nil {
				log.From(r.Context()).Warn("admin_auth_failed",
					slog.String("op", op),
					slog.String("err", err.Error()),
				)
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), ctxSubject, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFrom возвращает sub admin-токена из контекста или "".
func SubjectFrom(ctx context.Context) string {
	sub, _ := ctx.Value(ctxSubject).(string)
	return sub
}

func bearer(r *http.Request) string {
	const prefix = "Bearer "

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}

func verify(raw string, opts AuthOptions) (string, error) {
	if raw == "" {
		return "", errors.New("missing bearer token")
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5 * time.Second),
		jwt.WithExpirationRequired(),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(opts.Secret), nil
	}, parserOpts...)
	if err != nil {
		return "", err
	}

	if !token.Valid || claims.Subject == "" {
		return "", errors.New("token without subject")
	}

	return claims.Subject, nil
}
