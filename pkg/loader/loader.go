// Package loader reads column configurations and sample rows from JSON,
// NDJSON, YAML and TOML.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a supported serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrEmptyInput is returned for blank input.
var ErrEmptyInput = errors.New("empty input")

var (
	// Section headers: [server], [[items]], ["table name"], [database.credentials].
	// JSON arrays like [1, 2, 3] do not match.
	tomlSectionPattern = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// key = value, as opposed to YAML's key: value.
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// FormatFromPath maps a file extension to a format.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".ndjson", ".jsonl":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	}
	return "", false
}

// DetectFormat picks the format from the file extension, then from the
// content.
func DetectFormat(path string, data []byte) Format {
	if f, ok := FormatFromPath(path); ok {
		return f
	}
	input := strings.TrimSpace(string(data))
	// TOML first: its [section] headers look like JSON arrays
	if isLikelyTOML(input) {
		return FormatTOML
	}
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode unmarshals data in the given format into v. With strict set,
// unknown fields are an error.
func Decode(data []byte, format Format, v any, strict bool) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyInput
	}
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		if strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("invalid TOML: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(strict)
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}

// DecodeFile reads path and decodes it into v, detecting the format.
func DecodeFile(path string, v any, strict bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := Decode(data, DetectFormat(path, data), v, strict); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Record is one sample row keyed by column prop.
type Record = map[string]any

// LoadRecords parses sample rows, auto-detecting the format:
//   - JSON array of objects, or a single object
//   - newline-delimited JSON, one object per line
//   - YAML list, single document or multi-document (separated by ---)
//   - TOML with an array of tables, e.g. [[rows]]
//
// A document that is an object holding exactly one list of objects (such as
// {"rows": [...]}) yields that list.
func LoadRecords(input string) ([]Record, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	var (
		docs []any
		err  error
	)
	lines := strings.Split(input, "\n")
	switch {
	case strings.Contains(input, "\n---") || strings.HasPrefix(input, "---"):
		docs, err = loadMultiDocYAML(input)
	case !strings.HasPrefix(input, "[") && isLikelyNDJSON(lines):
		docs, err = loadNDJSON(lines)
	case isLikelyTOML(input):
		docs, err = loadSingle(input, FormatTOML)
	case strings.HasPrefix(input, "{") || strings.HasPrefix(input, "["):
		docs, err = loadSingle(input, FormatJSON)
	default:
		docs, err = loadSingle(input, FormatYAML)
	}
	if err != nil {
		return nil, err
	}
	return flattenRecords(docs)
}

// LoadRecordsFile reads sample rows from a file.
func LoadRecordsFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := LoadRecords(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func loadSingle(input string, format Format) ([]any, error) {
	var doc any
	if err := Decode([]byte(input), format, &doc, false); err != nil {
		return nil, err
	}
	return []any{doc}, nil
}

func loadMultiDocYAML(input string) ([]any, error) {
	var docs []any
	dec := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found in multi-document YAML")
	}
	return docs, nil
}

func loadNDJSON(lines []string) ([]any, error) {
	docs := make([]any, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var doc any
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", i+1, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func flattenRecords(docs []any) ([]Record, error) {
	var records []Record
	for _, doc := range docs {
		switch v := doc.(type) {
		case []any:
			for _, item := range v {
				rec, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("record %d is %T, not an object", len(records), item)
				}
				records = append(records, rec)
			}
		case map[string]any:
			if list, ok := soleList(v); ok {
				nested, err := flattenRecords([]any{list})
				if err != nil {
					return nil, err
				}
				records = append(records, nested...)
				continue
			}
			records = append(records, v)
		default:
			return nil, fmt.Errorf("record %d is %T, not an object", len(records), doc)
		}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no records found")
	}
	return records, nil
}

// soleList returns the value of a single-key object when it is a list.
func soleList(m map[string]any) ([]any, bool) {
	if len(m) != 1 {
		return nil, false
	}
	for _, v := range m {
		list, ok := v.([]any)
		return list, ok
	}
	return nil, false
}

// isLikelyNDJSON requires several non-empty lines, most of them starting
// like a JSON object.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyCount++
		if strings.HasPrefix(trimmed, "{") {
			jsonCount++
		}
	}
	return nonEmptyCount > 1 && jsonCount > nonEmptyCount/2
}

// isLikelyTOML looks for section headers or a majority of key = value lines.
func isLikelyTOML(input string) bool {
	sectionCount := 0
	keyValueCount := 0
	nonEmptyCount := 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++
		if tomlSectionPattern.MatchString(line) {
			sectionCount++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}
	return sectionCount > 0 || (nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2)
}
