// Package render turns a template layout and a set of field values into a document artifact.
package render

import (
	"context"
	"encoding/json"

	apperrors "github.com/allisson/sharelink/internal/errors"
)

// ContentTypeJSON is the content type of documents produced by JSONRenderer.
const ContentTypeJSON = "application/json"

// ErrInvalidLayout indicates the stored layout cannot be rendered.
var ErrInvalidLayout = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid template layout")

// Artifact is a rendered document.
type Artifact struct {
	ContentType string
	Body        []byte
}

// Renderer renders a layout with the given field values.
type Renderer interface {
	Render(ctx context.Context, layout json.RawMessage, fields map[string]string) (*Artifact, error)
}

// JSONRenderer produces a document description for client-side rendering: the layout with
// the field values set as its single "inputs" entry. Every other layout key is preserved.
type JSONRenderer struct{}

// NewJSONRenderer creates a new JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(
	ctx context.Context,
	layout json.RawMessage,
	fields map[string]string,
) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var document map[string]json.RawMessage
	if err := json.Unmarshal(layout, &document); err != nil || document == nil {
		return nil, ErrInvalidLayout
	}

	if fields == nil {
		fields = map[string]string{}
	}
	inputs, err := json.Marshal([]map[string]string{fields})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal document inputs")
	}
	document["inputs"] = inputs

	body, err := json.Marshal(document)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal document")
	}

	return &Artifact{ContentType: ContentTypeJSON, Body: body}, nil
}
