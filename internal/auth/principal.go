package auth

import (
	"context"

	"aeroclub/logbook/internal/constants"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated identity attached to a request. Login and
// session handling live in a fronting layer; the service only consumes the
// resolved identity.
type Principal struct {
	AccountID int64
	Login     string
	Role      constants.AccountRole
	PilotID   *int64
}

func (p *Principal) IsAdmin() bool    { return p.Role == constants.AccountRoleAdmin }
func (p *Principal) IsMechanic() bool { return p.Role == constants.AccountRoleMechanic }

// IsPrivileged reports whether the principal sees unmasked personal data.
func (p *Principal) IsPrivileged() bool {
	return p.Role == constants.AccountRoleAdmin || p.Role == constants.AccountRoleMechanic
}

// WithPrincipal attaches the principal to the request context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal retrieves the principal from context, nil when absent.
func GetPrincipal(ctx context.Context) *Principal {
	if p, ok := ctx.Value(principalKey).(*Principal); ok {
		return p
	}
	return nil
}
