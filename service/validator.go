package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"

	"github.com/modulesio/prsnt/api"
	"github.com/modulesio/prsnt/domain"
)

// PayloadValidator checks raw announce payloads against the AnnounceRequest schema of the
// embedded OpenAPI document. Octet values of the address are not range checked.
type PayloadValidator struct {
	schema *openapi3.Schema
}

// NewPayloadValidator loads and validates the embedded OpenAPI document.
func NewPayloadValidator() (*PayloadValidator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(api.OpenAPISpec)
	if err != nil {
		return nil, fmt.Errorf("can't load openapi document, err: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid openapi document, err: %w", err)
	}

	ref, ok := doc.Components.Schemas[api.AnnounceRequestSchema]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi document has no %s schema", api.AnnounceRequestSchema)
	}

	return &PayloadValidator{schema: ref.Value}, nil
}

// Validate parses payload and converts it to an Announcement.
// Returns bad_parameter when the payload is not JSON or does not match the schema.
func (v *PayloadValidator) Validate(payload []byte) (domain.Announcement, error) {
	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return domain.Announcement{}, NewBadParameterError("announce body is not valid JSON", err)
	}

	if err := v.schema.VisitJSON(value); err != nil {
		return domain.Announcement{}, NewBadParameterError("announce body does not match schema", &openapi3filter.RequestError{
			Reason: "doesn't match schema " + api.AnnounceRequestSchema,
			Err:    err,
		})
	}

	// The schema guarantees the shape below.
	obj := value.(map[string]any)
	rawUsers := obj["users"].([]any)
	users := make([]string, 0, len(rawUsers))
	for _, u := range rawUsers {
		users = append(users, u.(string))
	}

	return domain.Announcement{
		Name:       obj["name"].(string),
		Protocol:   domain.Protocol(obj["protocol"].(string)),
		Address:    obj["address"].(string),
		Port:       int(obj["port"].(float64)),
		Visibility: domain.Visibility(obj["visibility"].(string)),
		Users:      users,
	}, nil
}
