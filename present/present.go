// Package present serializes editions into the schema-shaped payloads which
// the publishing api expects. The core treats it as opaque.
package present

import (
	"github.com/wansing/editorial/core"
	"github.com/wansing/editorial/util"
)

type Payload struct {
	SchemaName   string  `json:"schema_name"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	RenderingApp string  `json:"rendering_app"`
	Routes       []Route `json:"routes"`
	Details      Details `json:"details"`
}

type Route struct {
	Path string `json:"path"`
	Type string `json:"type"` // "exact" or "prefix"
}

type Details struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Body  string `json:"body"`
}

// ForEdition builds the publishing-api payload for an edition. Multi-part
// editions claim a prefix route because their parts live below the base path.
func ForEdition(e *core.Edition, renderingApp string) (Payload, error) {

	artefact, err := e.Artefact()
	if err != nil {
		return Payload{}, err
	}

	parts, err := e.Parts()
	if err != nil {
		return Payload{}, err
	}

	var payloadParts = make([]Part, len(parts))
	for i, part := range parts {
		payloadParts[i] = Part{
			Title: part.Title,
			Slug:  part.Slug,
			Body:  part.Body,
		}
	}

	var routeType = "exact"
	if len(parts) > 1 {
		routeType = "prefix"
	}

	var schemaName = artefact.Kind()
	if schemaName == "" {
		schemaName = "answer"
	}

	indexable, err := e.IndexableContent()
	if err != nil {
		return Payload{}, err
	}

	return Payload{
		SchemaName:   schemaName,
		Title:        e.Title(),
		Description:  util.Trunc(indexable, 160),
		RenderingApp: renderingApp,
		Routes: []Route{
			{Path: artefact.Link(), Type: routeType},
		},
		Details: Details{
			Parts: payloadParts,
		},
	}, nil
}
