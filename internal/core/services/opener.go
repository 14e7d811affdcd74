package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// Ensure Opener implements the interface.
var _ driving.DocumentOpener = (*Opener)(nil)

// Opener finds documents by key and creates them on demand.
type Opener struct {
	manager driving.DocumentManager
	destroy func() bool
}

// NewOpener creates an opener over manager. destroyOnClose supplies the
// default close policy for new documents; nil means true.
func NewOpener(manager driving.DocumentManager, destroyOnClose func() bool) *Opener {
	if destroyOnClose == nil {
		destroyOnClose = func() bool { return true }
	}
	return &Opener{manager: manager, destroy: destroyOnClose}
}

// Open shows the document with the request's key, creating it first when
// none is open. A new document is disposed again if its content fails to
// initialise or ctx is cancelled before it is shown.
func (o *Opener) Open(ctx context.Context, req driving.OpenRequest) (driving.Document, error) {
	if req.ID != "" {
		if doc := o.manager.FindDocumentByID(req.ID, req.ContentType); doc != nil {
			logger.Debug("document %q already open", req.ID)
			doc.Show()
			return doc, nil
		}
	}

	doc, err := o.manager.CreateDocument(ctx, req.ContentType, req.Model, req.Parameter, req.Parent)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	doc.SetID(req.ID)
	if req.Title != "" {
		doc.SetTitle(req.Title)
	}
	destroy := o.destroy()
	if req.KeepOnClose != nil {
		destroy = !*req.KeepOnClose
	}
	doc.SetDestroyOnClose(destroy)

	if err := initialize(ctx, doc.Content()); err != nil {
		if derr := doc.Dispose(context.WithoutCancel(ctx)); derr != nil {
			logger.Error("dispose document %q after failed open: %v", req.ID, derr)
		}
		return nil, err
	}

	doc.Show()
	return doc, nil
}

// CloseByID closes the document with the key, reporting whether one matched.
func (o *Opener) CloseByID(ctx context.Context, id, contentType string, force bool) (bool, error) {
	doc := o.manager.FindDocumentByID(id, contentType)
	if doc == nil {
		return false, nil
	}
	return true, doc.Close(ctx, force)
}

func initialize(ctx context.Context, content any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if in, ok := content.(driven.Initializer); ok {
		if err := in.Initialize(ctx); err != nil {
			return fmt.Errorf("initialize content: %w", err)
		}
	}
	return ctx.Err()
}
