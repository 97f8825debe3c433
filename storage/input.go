package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"zillow-scraper/utils"
)

// InputErrorKind classifies why an input document was rejected.
type InputErrorKind string

const (
	InputNotFound InputErrorKind = "not_found"
	InputRead     InputErrorKind = "read"
	InputSyntax   InputErrorKind = "syntax"
	InputShape    InputErrorKind = "shape"
)

// InputError is returned for any document-level input failure.
type InputError struct {
	Path string
	Kind InputErrorKind
	Err  error
}

func (e *InputError) Error() string {
	switch e.Kind {
	case InputNotFound:
		return fmt.Sprintf("input file not found: %s", e.Path)
	case InputSyntax:
		return fmt.Sprintf("failed to parse JSON file %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

var errUnrecognizedShape = errors.New("could not recognize structure of input JSON as Zillow listings")

// wrapperKeys are the object keys known to hold the listing array, in the
// order they are tried.
var wrapperKeys = []string{"results", "listings", "props", "properties"}

// LoadInput reads a JSON document and returns its raw listing items.
func LoadInput(path string, logger *utils.Logger) ([]any, error) {
	if logger == nil {
		logger = utils.Discard()
	}
	logger = logger.With("input")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &InputError{Path: path, Kind: InputNotFound, Err: err}
		}
		return nil, &InputError{Path: path, Kind: InputRead, Err: err}
	}
	logger.Debug("Loaded JSON file %s (%d bytes)", path, len(data))

	items, err := ExtractRawListings(data)
	if err != nil {
		var inErr *InputError
		if errors.As(err, &inErr) {
			inErr.Path = path
		}
		return nil, err
	}
	logger.Debug("Found %d raw listing items", len(items))
	return items, nil
}

// ExtractRawListings decodes a document and locates its listing items.
//
// Accepted shapes, in order: a bare array; an object holding an array under
// one of wrapperKeys; or, as a last resort, an object whose top-level values
// include arrays of objects, which are concatenated in document order. The
// last form is a heuristic and can merge unrelated arrays from a malformed
// document.
//
// Numbers are decoded as json.Number.
func ExtractRawListings(data []byte) ([]any, error) {
	var doc json.RawMessage
	if err := decodeStrict(data, &doc); err != nil {
		return nil, &InputError{Kind: InputSyntax, Err: err}
	}

	switch firstByte(doc) {
	case '[':
		var items []any
		if err := decodeStrict(doc, &items); err != nil {
			return nil, &InputError{Kind: InputSyntax, Err: err}
		}
		return items, nil
	case '{':
		return extractFromObject(doc)
	}
	return nil, &InputError{Kind: InputShape, Err: errUnrecognizedShape}
}

func extractFromObject(doc json.RawMessage) ([]any, error) {
	keys, values, err := decodeOrderedObject(doc)
	if err != nil {
		return nil, &InputError{Kind: InputSyntax, Err: err}
	}

	for _, key := range wrapperKeys {
		if items, ok := values[key].([]any); ok {
			return items, nil
		}
	}

	var items []any
	for _, key := range keys {
		list, ok := values[key].([]any)
		if !ok || len(list) == 0 {
			continue
		}
		if _, isObject := list[0].(map[string]any); isObject {
			items = append(items, list...)
		}
	}
	if len(items) > 0 {
		return items, nil
	}
	return nil, &InputError{Kind: InputShape, Err: errUnrecognizedShape}
}

// decodeOrderedObject decodes a JSON object while remembering the order in
// which its keys first appear. Duplicate keys keep the last value.
func decodeOrderedObject(doc json.RawMessage) ([]string, map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}

	var keys []string
	values := make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = value
	}
	return keys, values, nil
}

// decodeStrict decodes exactly one JSON value from data and rejects
// trailing content.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("extra data after top-level JSON value")
	}
	return nil
}

func firstByte(b []byte) byte {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
