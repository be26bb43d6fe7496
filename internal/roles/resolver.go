package roles

import (
	"context"

	"go.uber.org/zap"

	"sangha/internal/profile"
)

// Home paths of the SPA shells.
const (
	PathOnboarding = "/onboarding"
	PathAdmin      = "/admin"
	PathApp        = "/app"
)

// Resolution is what the server knows about the signed-in user's access.
type Resolution struct {
	Role          profile.Role     `json:"role"`
	ProfileExists bool             `json:"profileExists"`
	Profile       *profile.Profile `json:"profile,omitempty"`
}

// ProfileLookup finds a profile by email, returning nil when there is none.
type ProfileLookup interface {
	GetByEmail(ctx context.Context, email string) (*profile.Profile, error)
}

// Resolver derives a role from the profile registered under an email.
type Resolver struct {
	profiles ProfileLookup
	log      *zap.Logger
}

// NewResolver creates a resolver.
func NewResolver(profiles ProfileLookup, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{profiles: profiles, log: log}
}

// Resolve never fails: lookup errors and missing profiles both yield an
// unregistered student so rendering is never blocked.
func (r *Resolver) Resolve(ctx context.Context, email string) Resolution {
	fallback := Resolution{Role: profile.RoleStudent}
	if email == "" {
		return fallback
	}
	p, err := r.profiles.GetByEmail(ctx, email)
	if err != nil {
		r.log.Warn("role resolution failed", zap.String("email", email), zap.Error(err))
		return fallback
	}
	if p == nil {
		return fallback
	}
	role := p.Role
	if !role.Valid() {
		role = profile.RoleStudent
	}
	return Resolution{Role: role, ProfileExists: true, Profile: p}
}

// HomePath is the shell an authenticated user lands on.
func HomePath(res Resolution) string {
	switch {
	case !res.ProfileExists:
		return PathOnboarding
	case res.Role == profile.RoleAdmin:
		return PathAdmin
	default:
		return PathApp
	}
}

// Allowed reports whether res grants any of the roles.
func Allowed(res Resolution, allowed ...profile.Role) bool {
	if !res.ProfileExists {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if res.Role == r {
			return true
		}
	}
	return false
}
