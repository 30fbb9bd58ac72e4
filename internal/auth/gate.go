package auth

import (
	"strings"

	"github.com/zaqqye/evaluasi_backend/internal/models"
	apperrors "github.com/zaqqye/evaluasi_backend/pkg/errors"
)

// RosterSource is the read-only roster view the gate resolves students from.
type RosterSource interface {
	Get() models.Roster
}

// Gate resolves login credentials to an identity. Subject admins share one
// secret; students log in with their name and NIM.
type Gate struct {
	roster      RosterSource
	subjects    []string
	adminSecret string
}

func NewGate(roster RosterSource, subjects []string, adminSecret string) *Gate {
	return &Gate{
		roster:      roster,
		subjects:    append([]string(nil), subjects...),
		adminSecret: adminSecret,
	}
}

// Authenticate matches username case-insensitively. The subject-admin check
// runs first: a username naming both a subject and a student resolves to the
// admin whenever the admin secret is given. Any failure is
// ErrAuthenticationFailed with no hint about which part was wrong.
func (g *Gate) Authenticate(username, secret string) (models.Identity, error) {
	name := strings.ToLower(strings.TrimSpace(username))
	if name == "" || secret == "" {
		return models.Identity{}, apperrors.ErrAuthenticationFailed
	}

	for _, subject := range g.subjects {
		if strings.ToLower(subject) == name && secret == g.adminSecret {
			return models.Identity{
				DisplayName: subject,
				Role:        models.RoleAdmin,
				Subject:     subject,
			}, nil
		}
	}

	if st, ok := g.roster.Get().FindByName(name); ok && secret == st.NIM {
		return models.Identity{
			DisplayName: st.Name,
			Role:        models.RoleStudent,
			StudentID:   st.ID,
		}, nil
	}

	return models.Identity{}, apperrors.ErrAuthenticationFailed
}
