package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

var (
	// ErrInvalidPayload is returned when the request body is not a JSON object
	ErrInvalidPayload = goerr.New("invalid event payload")

	// ErrMissingField is returned when a field required by the event format is absent
	ErrMissingField = goerr.New("missing field in event payload")
)

// Payload is a decoded webhook body. Its shape depends on the event type, so fields
// are resolved by dotted path (e.g. "pull_request.head.repo.full_name").
type Payload map[string]any

// ParsePayload decodes a JSON object. Numbers are kept in their textual form.
func ParsePayload(data []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, goerr.Wrap(ErrInvalidPayload, "failed to decode JSON body",
			goerr.V("cause", err.Error()),
			goerr.V("size", len(data)),
		)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, goerr.Wrap(ErrInvalidPayload, "JSON body is not an object")
	}

	return Payload(obj), nil
}

// Lookup returns the raw value at path
func (p Payload) Lookup(path string) (any, error) {
	var cur any = map[string]any(p)
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, goerr.Wrap(ErrMissingField, "parent of field is not an object",
				goerr.V("path", path),
				goerr.V("key", key),
			)
		}

		v, ok := obj[key]
		if !ok {
			return nil, goerr.Wrap(ErrMissingField, "field not found",
				goerr.V("path", path),
				goerr.V("key", key),
			)
		}
		cur = v
	}

	return cur, nil
}

// String returns the value at path as display text. JSON null becomes an empty string.
func (p Payload) String(path string) (string, error) {
	v, err := p.Lookup(path)
	if err != nil {
		return "", err
	}

	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		raw, err := json.Marshal(x)
		if err != nil {
			return "", goerr.Wrap(err, "failed to render field", goerr.V("path", path))
		}
		return string(raw), nil
	}
}

// Has reports whether path exists and is not null
func (p Payload) Has(path string) bool {
	v, err := p.Lookup(path)
	return err == nil && v != nil
}
