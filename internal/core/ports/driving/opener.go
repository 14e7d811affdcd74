package driving

import "context"

// OpenRequest describes a document to find or create.
type OpenRequest struct {
	// ID is the key used to find an existing document.
	ID string

	// ContentType selects the view.
	ContentType string

	// Title is applied to newly created documents when set.
	Title string

	// Model is the content model for a new document.
	Model any

	// Parameter is passed to the view binding.
	Parameter any

	// Parent is the parent context passed to the view binding.
	Parent any

	// KeepOnClose keeps the document registered after Close instead of
	// destroying it. The default follows DocumentSettings.DestroyOnClose.
	KeepOnClose *bool
}

// DocumentOpener finds or creates documents and shows them.
type DocumentOpener interface {
	// Open shows the document with the request's key, creating and
	// initialising it first when none exists.
	Open(ctx context.Context, req OpenRequest) (Document, error)

	// CloseByID closes the document with the key if one is open.
	// Returns false when no document matched.
	CloseByID(ctx context.Context, id, contentType string, force bool) (bool, error)
}
