package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Note is one free-form named text field on a supplementary record.
type Note struct {
	Key  string
	Text string
}

// Record holds the optional per-product detail shown in the detail overlay:
// measurement images, video links, and arbitrary named notes. All fields may
// be empty; an empty record is still "present" for affordance purposes.
type Record struct {
	Images     []string
	VideoLinks []string
	Notes      []Note
}

// Supplementary maps product name to its detail record. Absence of a name
// means no detail affordance is shown for that product.
type Supplementary map[string]Record

// Has reports whether a record exists for name.
func (s Supplementary) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// LoadSupplementaryFile reads the supplementary records at path. A missing
// file is not an error: supplementary data is optional. A malformed file
// returns an error alongside an empty map so the caller can log and proceed.
func LoadSupplementaryFile(path string) (Supplementary, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Supplementary{}, nil
		}
		return Supplementary{}, fmt.Errorf("read supplementary data: %w", err)
	}
	defer f.Close()
	return LoadSupplementary(f)
}

// LoadSupplementary parses supplementary records from r. Note fields keep
// their declaration order, so each record is decoded off the token stream.
func LoadSupplementary(r io.Reader) (Supplementary, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return Supplementary{}, fmt.Errorf("parse supplementary data: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Supplementary{}, fmt.Errorf("parse supplementary data: top level must be an object")
	}

	out := Supplementary{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Supplementary{}, fmt.Errorf("parse supplementary data: %v", err)
		}
		name, ok := tok.(string)
		if !ok {
			return Supplementary{}, fmt.Errorf("parse supplementary data: unexpected token %v", tok)
		}
		rec, err := decodeRecord(dec)
		if err != nil {
			return Supplementary{}, fmt.Errorf("parse supplementary data: %q: %v", name, err)
		}
		out[name] = rec
	}
	return out, nil
}

func decodeRecord(dec *json.Decoder) (Record, error) {
	var rec Record

	tok, err := dec.Token()
	if err != nil {
		return rec, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return rec, fmt.Errorf("record must be an object")
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return rec, err
		}
		key, ok := tok.(string)
		if !ok {
			return rec, fmt.Errorf("unexpected token %v", tok)
		}

		switch key {
		case "images":
			var paths []string
			if err := dec.Decode(&paths); err != nil {
				return rec, fmt.Errorf("images: %v", err)
			}
			rec.Images = append(rec.Images, dropEmpty(paths)...)
		case "tiktoks", "videos":
			var links []string
			if err := dec.Decode(&links); err != nil {
				return rec, fmt.Errorf("%s: %v", key, err)
			}
			rec.VideoLinks = append(rec.VideoLinks, dropEmpty(links)...)
		default:
			var text string
			if err := dec.Decode(&text); err != nil {
				return rec, fmt.Errorf("note %q: %v", key, err)
			}
			if strings.TrimSpace(text) != "" {
				rec.Notes = append(rec.Notes, Note{Key: key, Text: text})
			}
		}
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return rec, err
	}
	return rec, nil
}

func dropEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
