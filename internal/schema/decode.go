package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// ErrMalformedJSON is returned when a body is not parseable JSON.
var ErrMalformedJSON = errors.New("malformed JSON body")

// DecodeObject reads a JSON object from body. Numbers are kept as
// json.Number so integers survive intact. A body that is valid JSON but not
// an object yields a *ValidationError; unparseable input yields ErrMalformedJSON.
func DecodeObject(body io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, ErrMalformedJSON
	}
	obj, ok := v.(map[string]any)
	if !ok {
		received := typeName(v)
		return nil, &ValidationError{Issues: []Issue{{
			Path:     []string{},
			Code:     CodeInvalidType,
			Message:  "Expected object, received " + received,
			Expected: "object",
			Received: received,
		}}}
	}
	return obj, nil
}
