package middleware

import (
	"net/http"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/domain/user"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireLead requires lead or admin role
func RequireLead(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrLeadAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrLeadAccessRequired)
			return
		}

		role := user.Role(roleStr)
		if role != user.RoleLead && role != user.RoleAdmin {
			response.HandleError(w, user.ErrLeadAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
