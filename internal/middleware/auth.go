package middleware

import (
	"context"
	"net/http"

	"aeroclub/logbook/internal/auth"
	"aeroclub/logbook/internal/models/entities"
)

// AccountLookup resolves an authenticated login to its account record.
type AccountLookup interface {
	GetByLogin(ctx context.Context, login string) (*entities.UserAccount, error)
}

// PrincipalMiddleware resolves the identity asserted by the fronting
// authentication layer (X-Auth-Login header) into a Principal. Interactive
// login and session issuance are deliberately outside this service.
func PrincipalMiddleware(accounts AccountLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			login := r.Header.Get("X-Auth-Login")
			if login == "" {
				http.Error(w, "Unauthorized: missing identity", http.StatusUnauthorized)
				return
			}

			account, err := accounts.GetByLogin(r.Context(), login)
			if err != nil || account == nil {
				http.Error(w, "Unauthorized: unknown account", http.StatusUnauthorized)
				return
			}
			if account.IsLocked() {
				http.Error(w, "Unauthorized: account locked", http.StatusForbidden)
				return
			}

			principal := &auth.Principal{
				AccountID: account.ID,
				Login:     account.Login,
				Role:      account.Role,
				PilotID:   account.PilotID,
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}

// IsAdminMiddleware restricts a route group to administrator accounts.
func IsAdminMiddleware() func(http.Handler) http.Handler {
	return requireRole(func(p *auth.Principal) bool { return p.IsAdmin() }, "admin")
}

// IsMechanicMiddleware restricts a route group to mechanic or admin
// accounts (admins retain technical access, as in the fleet panel rules).
func IsMechanicMiddleware() func(http.Handler) http.Handler {
	return requireRole(func(p *auth.Principal) bool { return p.IsPrivileged() }, "mechanic")
}

func requireRole(allowed func(*auth.Principal) bool, name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := auth.GetPrincipal(r.Context())
			if principal == nil || !allowed(principal) {
				http.Error(w, "Unauthorized. Need "+name+" perms", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
