// Package jsonutil provides shared utilities for JSON handling: validation,
// canonical 2-space indentation, and error wrapping.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ErrMalformed reports that textual input was not valid JSON.
var ErrMalformed = errors.New("malformed structured input")

// indentOptions is the fixed 2-space indentation convention.
var indentOptions = &pretty.Options{Width: 80, Indent: "  "}

// Indent reformats raw JSON text with 2-space indentation. Returns
// ErrMalformed (wrapped) when the input is not valid JSON.
func Indent(data []byte) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("indent json: %w", ErrMalformed)
	}
	out := pretty.PrettyOptions(data, indentOptions)
	return bytes.TrimRight(out, "\n"), nil
}

// IndentValue serializes v with 2-space indentation. Textual inputs
// (string, []byte, json.RawMessage) are validated and reformatted;
// anything else is marshaled directly.
func IndentValue(v any) ([]byte, error) {
	switch t := v.(type) {
	case string:
		return Indent([]byte(t))
	case []byte:
		return Indent(t)
	case json.RawMessage:
		return Indent(t)
	default:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("indent value: %w", err)
		}
		return out, nil
	}
}

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}
