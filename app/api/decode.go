package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

// DecodeJSON reads the request body into dst. Broken JSON is a bad request;
// an empty body or a value of the wrong type is unprocessable.
func DecodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()

	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: empty body", ErrUnprocessable)
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	default:
		return fmt.Errorf("%w: %v", ErrUnprocessable, err)
	}
}

// FlexInt is an integer that also accepts a JSON string holding a number,
// e.g. both 1 and "1".
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return fmt.Errorf("%w: null is not a number", ErrUnprocessable)
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", ErrUnprocessable, raw)
	}
	*f = FlexInt(n)
	return nil
}

// ID converts f to a row id. Negative values are rejected.
func (f FlexInt) ID() (uint, error) {
	if f < 0 {
		return 0, fmt.Errorf("%w: negative id %d", ErrUnprocessable, f)
	}
	return uint(f), nil
}

// ParseID parses a path segment as a row id.
func ParseID(value string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id %q", ErrNotFound, value)
	}
	return uint(id), nil
}
