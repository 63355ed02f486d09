package client

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// decode unmarshals body into v. An empty body is a decode failure.
func decode(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return errors.New("empty body")
	}
	return json.Unmarshal(body, v)
}

// decodeObject reads body as a JSON object keyed by field name.
func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := decode(body, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("body is not an object")
	}
	return obj, nil
}

// isNull reports whether a raw field is absent or JSON null.
func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// snippet trims a body for log and error messages.
func snippet(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
