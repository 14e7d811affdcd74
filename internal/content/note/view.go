package note

import (
	"github.com/custodia-labs/docdeck/internal/adapters/driven/views"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// View presents a bound Note.
type View struct {
	views.Binding
}

// Note returns the bound note, or nil.
func (v *View) Note() *Note {
	n, _ := v.Model().(*Note)
	return n
}

// Register adds the note view to a resolver.
func Register(r *views.Resolver) error {
	return r.Register(ContentType, func() driven.View { return &View{} })
}

// Construct builds a note from a session parameter, or an empty in-memory
// note when the parameter is empty. It satisfies content.Constructor.
func Construct(parameter string) (any, error) {
	if parameter == "" {
		return NewWithBody(""), nil
	}
	return FromSessionParameter(parameter)
}
