// Package authz implements the access tiers every mutating operation is
// classified against before it touches storage: public, authenticated,
// owner-only, and admin-only.
package authz

import (
	"strings"

	"github.com/Bangbenzzz/blogerz-sub000/internal/common"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
)

// Gate decides access tiers. The root admin email comes from configuration
// and passes every admin check regardless of the stored role; it can never
// be banned or demoted through the API.
type Gate struct {
	adminEmail string
}

func NewGate(adminEmail string) *Gate {
	return &Gate{adminEmail: adminEmail}
}

// IsRootAdmin reports whether p is the configuration-designated admin
// identity. Comparison is case-insensitive.
func (g *Gate) IsRootAdmin(p *models.Profile) bool {
	return p != nil && g.adminEmail != "" && strings.EqualFold(p.Email, g.adminEmail)
}

// IsAdmin reports whether p passes the admin tier: the ADMIN role or the
// root-admin identity.
func (g *Gate) IsAdmin(p *models.Profile) bool {
	if p == nil {
		return false
	}
	return p.Role == models.RoleAdmin || g.IsRootAdmin(p)
}

// RequireAuthenticated passes for any valid, non-banned identity.
// A banned identity is rejected with ErrorBanned so the caller can
// redirect to the banned-state view.
func (g *Gate) RequireAuthenticated(p *models.Profile) error {
	if p == nil {
		return common.ErrorUnauthorized
	}
	if p.IsBanned {
		return common.ErrorBanned
	}
	return nil
}

// RequireAdmin passes only for the admin tier.
func (g *Gate) RequireAdmin(p *models.Profile) error {
	if err := g.RequireAuthenticated(p); err != nil {
		return err
	}
	if !g.IsAdmin(p) {
		return common.ErrorForbidden
	}
	return nil
}

// RequireOwner passes when p owns the resource identified by ownerID.
func (g *Gate) RequireOwner(p *models.Profile, ownerID string) error {
	if err := g.RequireAuthenticated(p); err != nil {
		return err
	}
	if p.ID != ownerID {
		return common.ErrorForbidden
	}
	return nil
}

// RequireOwnerOrAdmin passes for the resource owner and for admins.
func (g *Gate) RequireOwnerOrAdmin(p *models.Profile, ownerID string) error {
	if err := g.RequireAuthenticated(p); err != nil {
		return err
	}
	if p.ID != ownerID && !g.IsAdmin(p) {
		return common.ErrorForbidden
	}
	return nil
}
