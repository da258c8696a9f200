package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MaxJSONBodySize caps JSON request bodies.
const MaxJSONBodySize = 64 << 10

// Validator is implemented by request bodies that check themselves after decoding.
// Validate returns the problems found, in field order; an empty result means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes a JSON body of at most MaxJSONBodySize bytes into dest, rejecting unknown fields,
// then runs dest's Validate when it implements Validator. On failure it writes a 400 carrying the first problem
// and returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, decodeMessage(err))
		return false
	}
	if v, ok := dest.(Validator); ok {
		if problems := v.Validate(); len(problems) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, problems[0])
			return false
		}
	}
	return true
}

func decodeMessage(err error) string {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return "request body is required"
	case errors.As(err, &maxErr):
		return "request body is too large"
	default:
		return "invalid request body: " + err.Error()
	}
}
