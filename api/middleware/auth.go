package middleware

import (
	"net/http"
	"strings"

	"github.com/mlisondra/tindahan-backend/api/responses"
	pkgauth "github.com/mlisondra/tindahan-backend/pkg/auth"
	"github.com/mlisondra/tindahan-backend/pkg/config"
	pkgerrors "github.com/mlisondra/tindahan-backend/pkg/errors"
	"github.com/mlisondra/tindahan-backend/pkg/logger"
)

// Auth validates a buyer bearer token and seeds the request context with the
// buyer id.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseBuyerToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithBuyerID(r.Context(), claims.BuyerID)
			if logg != nil {
				ctx = logg.WithBuyerID(ctx, claims.BuyerID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
