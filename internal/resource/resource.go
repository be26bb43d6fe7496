package resource

import (
	"errors"

	"sangha/internal/validation"
)

// Type is the kind of media a resource points to.
type Type string

const (
	TypeBook    Type = "book"
	TypeVideo   Type = "video"
	TypeLecture Type = "lecture"
	TypePhoto   Type = "photo"
)

// Types lists every accepted resource type.
var Types = []string{string(TypeBook), string(TypeVideo), string(TypeLecture), string(TypePhoto)}

var ErrNotFound = errors.New("resource not found")

// Resource is a link in the shared library.
type Resource struct {
	ID           string  `json:"id"`
	Title        string  `json:"title" validate:"required"`
	Type         Type    `json:"type" validate:"resourcetype"`
	Category     string  `json:"category"`
	URL          string  `json:"url" validate:"required,url"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty" validate:"omitempty,url"`
}

// Filter narrows List; empty fields match everything.
type Filter struct {
	Type     Type
	Category string
}

// Match reports whether r passes f.
func (f Filter) Match(r Resource) bool {
	return (f.Type == "" || r.Type == f.Type) && (f.Category == "" || r.Category == f.Category)
}

var validate = validation.New(map[string][]string{"resourcetype": Types})

// Validate checks title, URL and type.
func (r Resource) Validate() error { return validate.Struct("resource", r) }
