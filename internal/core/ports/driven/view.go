package driven

// View is a resolved presentation of a content model.
// Views are opaque to the core; it only places them in slots.
type View interface {
	// Model returns the content model bound to the view, or nil when unbound.
	Model() any
}

// ViewResolver turns content types into views.
type ViewResolver interface {
	// ResolveView creates a view for a content type.
	// Returns an error wrapping domain.ErrResolution when no mapping exists.
	ResolveView(contentType string) (View, error)

	// BindView binds a content model to a view.
	// parameter and parent are passed through to the content untouched.
	BindView(view View, model, parameter, parent any) error

	// UnbindView clears every reference the view holds to its content.
	UnbindView(view View)
}
