package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// decodeError marks a body that could not be read as the expected JSON.
type decodeError struct {
	msg string
}

func (e *decodeError) Error() string { return e.msg }

// decodeJSON reads exactly one JSON value from the body into dst. Unknown
// fields are rejected so typos surface instead of silently dropping data.
func decodeJSON(r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return &decodeError{msg: fmt.Sprintf("unsupported content type %q", ct)}
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return &decodeError{msg: "request body is empty"}
		case errors.As(err, &maxErr):
			return &decodeError{msg: "request body too large"}
		default:
			return &decodeError{msg: "invalid JSON body: " + err.Error()}
		}
	}
	if dec.More() {
		return &decodeError{msg: "request body must contain a single JSON value"}
	}
	return nil
}

// idList is the body of batch operations.
type idList struct {
	IDs []string `json:"ids"`
}

// cleanIDs trims ids, drops blanks and duplicates, keeping order.
func cleanIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
