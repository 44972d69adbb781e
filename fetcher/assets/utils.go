package assets

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Return the string if it's available, else returns a empty string.
func getStringOrDefault(data Document, key string) string {
	if val, ok := data[key].(string); ok {
		return val
	}
	return ""
}

// Return the number if it's available, else returns zero.
func getFloatOrDefault(data Document, key string) float64 {
	if val, ok := data[key].(float64); ok {
		return val
	}
	return 0
}

func getBoolOrDefault(data Document, key string) bool {
	if val, ok := data[key].(bool); ok {
		return val
	}
	return false
}

// Return the nested object if it's available, else nil.
func getMapOrDefault(data Document, key string) Document {
	if val, ok := data[key].(map[string]any); ok {
		return val
	}
	return nil
}

// Return the string list, ignoring anything that is not a string.
func getStringSliceOrDefault(data Document, key string) []string {
	raw, ok := data[key].([]any)
	if !ok {
		return []string{}
	}

	values := make([]string, 0, len(raw))
	for _, entry := range raw {
		if s, ok := entry.(string); ok {
			values = append(values, s)
		}
	}
	return values
}

// Convert a raw document into one of the typed models.
func decodeDocument(doc Document, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// Walk the "data" object of a catalog document keeping the source order of the keys.
// encoding/json maps don't keep it, so the tokens are read one by one.
func decodeOrderedCatalog(body []byte) ([]string, map[string]Document, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, nil, err
	}

	var ids []string
	var entries map[string]Document

	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, nil, err
		}

		if key != "data" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, nil, fmt.Errorf("invalid value for %q: %w", key, err)
			}
			continue
		}

		if err := expectDelim(dec, '{'); err != nil {
			return nil, nil, err
		}
		entries = make(map[string]Document)
		for dec.More() {
			id, err := readKey(dec)
			if err != nil {
				return nil, nil, err
			}
			var doc Document
			if err := dec.Decode(&doc); err != nil {
				return nil, nil, fmt.Errorf("invalid entry %q: %w", id, err)
			}
			if _, dup := entries[id]; !dup {
				ids = append(ids, id)
			}
			entries[id] = doc
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, nil, err
		}
	}

	if entries == nil {
		return nil, nil, fmt.Errorf("catalog has no data object")
	}
	return ids, entries, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("couldn't convert the body to json: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("couldn't convert the body to json: %w", err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}
