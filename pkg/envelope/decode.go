package envelope

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/Sternrassler/neis-client/pkg/resource"
)

// snippetLimit bounds the body excerpt carried by DecodeError.
const snippetLimit = 256

// DecodeError is returned when a body is not a known envelope.
type DecodeError struct {
	// Tag is the top-level key, when one could be read.
	Tag string

	// Snippet is the start of the offending body.
	Snippet string

	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("decode %s envelope: %v", e.Tag, e.Err)
	}
	return fmt.Sprintf("decode envelope: %v", e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode parses a raw response body. The body must be a JSON object with a
// single key: either RESULT or the tag of a registered resource.
func Decode(data []byte) (Envelope, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(data, &outer); err != nil {
		return nil, newDecodeError("", data, err)
	}
	if len(outer) != 1 {
		return nil, newDecodeError("", data, fmt.Errorf("expected exactly one variant key, got %d", len(outer)))
	}

	for tag, raw := range outer {
		if tag == ResultTag {
			var code ResultCode
			if err := json.Unmarshal(raw, &code); err != nil {
				return nil, newDecodeError(tag, data, err)
			}
			return &Result{Code: code}, nil
		}

		decode, ok := variants[resource.Resource(tag)]
		if !ok {
			return nil, newDecodeError(tag, data, fmt.Errorf("unknown variant %q", tag))
		}
		env, err := decode(raw)
		if err != nil {
			return nil, newDecodeError(tag, data, err)
		}
		return env, nil
	}

	// unreachable: len(outer) == 1
	return nil, newDecodeError("", data, fmt.Errorf("empty envelope"))
}

// decodePayload parses the [ {head}, {row} ] pair of a resource variant.
func decodePayload[T any](res resource.Resource, raw json.RawMessage) (*Payload[T], error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return nil, err
	}
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected [head, body] pair, got %d elements", len(parts))
	}

	var head struct {
		Head *Head `json:"head"`
	}
	if err := json.Unmarshal(parts[0], &head); err != nil {
		return nil, err
	}
	if head.Head == nil {
		return nil, fmt.Errorf("missing head")
	}

	var body struct {
		Row *[]T `json:"row"`
	}
	if err := json.Unmarshal(parts[1], &body); err != nil {
		return nil, fmt.Errorf("row: %w", err)
	}
	if body.Row == nil {
		return nil, fmt.Errorf("missing row")
	}

	return &Payload[T]{
		Resource: res,
		Head:     *head.Head,
		Body:     Body[T]{Row: *body.Row},
	}, nil
}

func newDecodeError(tag string, data []byte, err error) *DecodeError {
	return &DecodeError{Tag: tag, Snippet: Snippet(data), Err: err}
}

// Snippet returns the first bytes of body for diagnostics, cut on a rune
// boundary.
func Snippet(body []byte) string {
	if len(body) <= snippetLimit {
		return string(body)
	}
	cut := snippetLimit
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
