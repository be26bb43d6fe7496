package profile

import (
	"errors"
	"time"

	"sangha/internal/validation"
)

// Role is the access level derived from a profile.
type Role string

const (
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
	RoleAdmin   Role = "admin"
)

// Roles lists every valid role.
var Roles = []Role{RoleStudent, RoleMentor, RoleAdmin}

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

// ParseRole returns the role named s, or false.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Categories is the closed set of community categories.
var Categories = []string{
	"School Student",
	"College Student",
	"Working Professional",
	"Householder",
	"Brahmachari",
	"Senior",
}

// ValidCategory reports whether c is one of Categories.
func ValidCategory(c string) bool {
	return validation.OneOf(c, Categories)
}

var (
	ErrNotFound   = errors.New("profile not found")
	ErrEmailTaken = errors.New("a profile with this email already exists")
	ErrExists     = errors.New("profile already exists")
)

// Profile is a devotee record.
type Profile struct {
	ID            string     `json:"id"`
	Name          string     `json:"name" validate:"required"`
	SpiritualName *string    `json:"spiritualName,omitempty"`
	Email         string     `json:"email" validate:"required,email"`
	Phone         string     `json:"phone"`
	PhotoURL      string     `json:"photoUrl"`
	DOB           *time.Time `json:"dob,omitempty"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	State         string     `json:"state"`
	Country       string     `json:"country"`
	Role          Role       `json:"role" validate:"role"`
	Category      string     `json:"category" validate:"category"`
	Goals         string     `json:"goals"`
	Hobbies       []string   `json:"hobbies"`
	Skills        []string   `json:"skills"`
	Interests     []string   `json:"interests"`
	CreatedAt     time.Time  `json:"createdAt"`
}

var validate = validation.New(map[string][]string{
	"role":     {string(RoleStudent), string(RoleMentor), string(RoleAdmin)},
	"category": Categories,
})

// Validate checks required fields and the closed enumerations.
func (p Profile) Validate() error {
	return validate.Struct("profile", p)
}

// normalize fills defaults before a write.
func (p *Profile) normalize() {
	if p.Role == "" {
		p.Role = RoleStudent
	}
	if p.Hobbies == nil {
		p.Hobbies = []string{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
}
