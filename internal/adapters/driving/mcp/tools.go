package mcp

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docdeck/internal/content"
	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
)

// defaultHistoryLimit caps history results when no limit is given.
const defaultHistoryLimit = 20

// DocumentOutput describes one hosted document.
type DocumentOutput struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	ContentType    string `json:"content_type"`
	State          string `json:"state"`
	Active         bool   `json:"active"`
	DestroyOnClose bool   `json:"destroy_on_close"`
}

// ListInput is the input schema for the list_documents tool.
type ListInput struct{}

// ListOutput is the output schema for the list_documents tool.
type ListOutput struct {
	Documents    []DocumentOutput `json:"documents"`
	Count        int              `json:"count"`
	Active       string           `json:"active,omitempty"`
	ContentTypes []string         `json:"content_types"`
}

// OpenInput is the input schema for the open_document tool.
type OpenInput struct {
	ContentType string `json:"content_type" jsonschema:"the content type to open, for example note"`
	Parameter   string `json:"parameter,omitempty" jsonschema:"content parameter such as file:/path/to/note.txt or text:hello"`
	ID          string `json:"id,omitempty" jsonschema:"document key; an open document with this key is shown instead of creating a new one"`
	Title       string `json:"title,omitempty" jsonschema:"tab title for a new document"`
	KeepOnClose bool   `json:"keep_on_close,omitempty" jsonschema:"keep the document registered after it is closed"`
}

// DocumentInput selects a document by key.
type DocumentInput struct {
	ID string `json:"id" jsonschema:"the document key"`
}

// CloseInput is the input schema for the close_document tool.
type CloseInput struct {
	ID    string `json:"id" jsonschema:"the document key"`
	Force bool   `json:"force,omitempty" jsonschema:"close even if the content asks to stay open"`
}

// CloseOutput is the output schema for the close_document tool.
type CloseOutput struct {
	Closed   bool           `json:"closed"`
	Document DocumentOutput `json:"document"`
}

// HistoryInput is the input schema for the document_history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of events to return (default 20)"`
}

// HistoryOutput is the output schema for the document_history tool.
type HistoryOutput struct {
	Events []EventOutput `json:"events"`
	Count  int           `json:"count"`
}

// EventOutput is one lifecycle event.
type EventOutput struct {
	DocumentID  string `json:"document_id"`
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	Kind        string `json:"kind"`
	At          string `json:"at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the documents open in the deck",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "open_document",
		Description: "Open a document, or show it if one with the same key is already open",
	}, s.handleOpen)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "show_document",
		Description: "Show a hidden document",
	}, s.handleShow)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "hide_document",
		Description: "Hide a document without closing it",
	}, s.handleHide)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "activate_document",
		Description: "Make a document the active one",
	}, s.handleActivate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "close_document",
		Description: "Close a document; content may refuse unless force is set",
	}, s.handleClose)

	if s.ports.Session != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "document_history",
			Description: "Recent document lifecycle events, newest first",
		}, s.handleHistory)
	}
}

// handleList handles the list_documents tool invocation.
func (s *Server) handleList(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	docs := s.ports.Manager.Documents()
	output := ListOutput{
		Documents:    make([]DocumentOutput, 0, len(docs)),
		Count:        len(docs),
		ContentTypes: s.ports.Content.ContentTypes(),
	}
	for _, doc := range docs {
		info := doc.Info()
		output.Documents = append(output.Documents, toDocumentOutput(info))
		if info.Active {
			output.Active = info.ID
		}
	}
	return nil, output, nil
}

// handleOpen handles the open_document tool invocation.
func (s *Server) handleOpen(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OpenInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	if input.ContentType == "" {
		return nil, DocumentOutput{}, fmt.Errorf("%w: content_type is required", domain.ErrInvalidInput)
	}

	model, err := s.ports.Content.New(input.ContentType, input.Parameter)
	if err != nil {
		return nil, DocumentOutput{}, fmt.Errorf("build content: %w", err)
	}

	id := input.ID
	if id == "" {
		id = content.IDOf(model)
	}
	title := input.Title
	if title == "" {
		title = content.TitleOf(model)
	}

	req := driving.OpenRequest{
		ID:          id,
		ContentType: input.ContentType,
		Title:       title,
		Model:       model,
		Parameter:   input.Parameter,
	}
	if input.KeepOnClose {
		keep := true
		req.KeepOnClose = &keep
	}

	doc, err := s.ports.Opener.Open(ctx, req)
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	return nil, toDocumentOutput(doc.Info()), nil
}

// handleShow handles the show_document tool invocation.
func (s *Server) handleShow(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	doc, err := s.find(input.ID)
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	doc.Show()
	return nil, toDocumentOutput(doc.Info()), nil
}

// handleHide handles the hide_document tool invocation.
func (s *Server) handleHide(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	doc, err := s.find(input.ID)
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	doc.Hide()
	return nil, toDocumentOutput(doc.Info()), nil
}

// handleActivate handles the activate_document tool invocation.
func (s *Server) handleActivate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	doc, err := s.find(input.ID)
	if err != nil {
		return nil, DocumentOutput{}, err
	}
	if err := s.ports.Manager.SetActiveDocument(doc); err != nil {
		return nil, DocumentOutput{}, err
	}
	return nil, toDocumentOutput(doc.Info()), nil
}

// handleClose handles the close_document tool invocation.
func (s *Server) handleClose(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CloseInput,
) (*mcp.CallToolResult, CloseOutput, error) {
	doc, err := s.find(input.ID)
	if err != nil {
		return nil, CloseOutput{}, err
	}
	var closed atomic.Bool
	release := s.ports.Manager.OnDocumentEvent(func(ev domain.DocumentEvent) {
		if ev.Kind == domain.EventClosed && ev.DocumentID == input.ID {
			closed.Store(true)
		}
	})
	err = doc.Close(ctx, input.Force)
	release()
	if err != nil {
		return nil, CloseOutput{}, err
	}
	return nil, CloseOutput{
		Closed:   closed.Load(),
		Document: toDocumentOutput(doc.Info()),
	}, nil
}

// handleHistory handles the document_history tool invocation.
func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	if s.ports.Session == nil {
		return nil, HistoryOutput{}, ErrNoSession
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	events, err := s.ports.Session.History(ctx, limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{
		Events: make([]EventOutput, len(events)),
		Count:  len(events),
	}
	for i, ev := range events {
		output.Events[i] = EventOutput{
			DocumentID:  ev.DocumentID,
			ContentType: ev.ContentType,
			Title:       ev.Title,
			Kind:        string(ev.Kind),
			At:          ev.At.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		}
	}
	return nil, output, nil
}

func (s *Server) find(id string) (driving.Document, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	doc := s.ports.Manager.FindDocumentByID(id, "")
	if doc == nil {
		return nil, fmt.Errorf("%w: document %q", domain.ErrNotFound, id)
	}
	return doc, nil
}

func toDocumentOutput(info domain.DocumentInfo) DocumentOutput {
	return DocumentOutput{
		ID:             info.ID,
		Title:          info.Title,
		ContentType:    info.ContentType,
		State:          info.State.String(),
		Active:         info.Active,
		DestroyOnClose: info.DestroyOnClose,
	}
}
