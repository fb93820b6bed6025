// Package rbac classifies request paths into public, protected and
// role-gated routes. It is pure: no framework types, no I/O, so the same
// table drives both the edge token check and the role-resolving phase.
package rbac

import (
	"strings"

	"github.com/forgehq/hackforge/models"
)

// Classification is the access decision for one path.
// RequiredRoles nil with AuthRequired true means any authenticated
// participant may pass.
type Classification struct {
	Public        bool
	AuthRequired  bool
	RequiredRoles []models.HackathonRole
}

// Allows reports whether a resolved role satisfies the classification.
func (c Classification) Allows(role models.HackathonRole) bool {
	if c.Public || !c.AuthRequired {
		return true
	}
	if len(c.RequiredRoles) == 0 {
		return true
	}
	for _, r := range c.RequiredRoles {
		if r == role {
			return true
		}
	}
	return false
}

// LoginPath and UnauthorizedPath are the soft-redirect targets. Access
// failures never surface as hard errors to the end user.
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

var publicRoutes = []string{
	"/login",
	"/signup",
	"/features",
	"/pricing",
	"/docs",
	"/contact",
	"/privacy",
	"/terms",
	"/public-hackathons",
}

var protectedPrefixes = []string{
	"/hackathons",
	"/profile",
	"/settings",
}

// hackathonSections maps the third path segment of /hackathons/{id}/...
// to the roles allowed in.
var hackathonSections = map[string][]models.HackathonRole{
	"setup":        {models.RoleOrganizer},
	"participants": {models.RoleOrganizer},
	"prizes":       {models.RoleOrganizer},
	"judging":      {models.RoleJudge},
	"teams":        {models.RoleBuilder, models.RoleOrganizer},
	"projects":     {models.RoleBuilder, models.RoleOrganizer},
	"submissions":  {models.RoleBuilder, models.RoleOrganizer},
}

// Classify applies the rules in priority order: public routes first,
// then role-gated hackathon sections and /api-settings, then the
// auth-only protected prefixes, and finally no restriction.
func Classify(path string) Classification {
	path = normalize(path)

	if path == "/" {
		return Classification{Public: true}
	}
	for _, route := range publicRoutes {
		if matchesPrefix(path, route) {
			return Classification{Public: true}
		}
	}

	if matchesPrefix(path, "/api-settings") {
		return Classification{AuthRequired: true, RequiredRoles: []models.HackathonRole{models.RoleOrganizer}}
	}

	if roles, ok := hackathonSectionRoles(path); ok {
		return Classification{AuthRequired: true, RequiredRoles: roles}
	}

	for _, prefix := range protectedPrefixes {
		if matchesPrefix(path, prefix) {
			return Classification{AuthRequired: true}
		}
	}

	return Classification{}
}

// hackathonSectionRoles matches /hackathons/{id}/{section}[/...] against
// the role-gated sections. The id segment is opaque here; identifier
// validity is the store's concern, not the guard's.
func hackathonSectionRoles(path string) ([]models.HackathonRole, bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 3 || segments[0] != "hackathons" || segments[1] == "" {
		return nil, false
	}
	roles, ok := hackathonSections[segments[2]]
	return roles, ok
}

// HackathonID extracts the {id} segment from /hackathons/{id}/... paths.
func HackathonID(path string) (string, bool) {
	segments := strings.Split(strings.Trim(normalize(path), "/"), "/")
	if len(segments) < 2 || segments[0] != "hackathons" || segments[1] == "" {
		return "", false
	}
	return segments[1], true
}

func matchesPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
