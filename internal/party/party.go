package party

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("party not found")

// Party is a registered account. The identity provider owns these rows;
// this service only ever reads them.
type Party struct {
	ID        uuid.UUID
	Email     string
	Profile   *Profile
	CreatedAt time.Time
}

// Profile carries the public-facing details used in partner listings and
// notification payloads.
type Profile struct {
	FirstName   string
	LastName    string
	Profession  string
	CompanyName string
}

// DisplayName returns the best human-readable name available for the party.
func (p *Party) DisplayName() string {
	if p.Profile != nil {
		name := strings.TrimSpace(p.Profile.FirstName + " " + p.Profile.LastName)
		if name != "" {
			return name
		}
	}

	return p.Email
}

// NormalizeEmail canonicalizes an email address for lookups and comparisons.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
