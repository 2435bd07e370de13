package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	specs "github.com/chrisconley/chargerate/specs"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Request is everything needed to rate one session.
type Request struct {
	Session specs.SessionSpec            `json:"session"`
	Events  []specs.TransactionEventSpec `json:"events"`
	Tariffs []specs.TariffSpec           `json:"tariffs"`
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported request file extension %q", filepath.Ext(path))
	}
}

// Load reads a rating request from a JSON or YAML file.
func Load(path string) (Request, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Request{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Request{}, fmt.Errorf("open request: %w", err)
	}
	defer f.Close()

	return Decode(f, format)
}

// Decode reads a rating request from r. YAML documents use the same field names as
// JSON ones.
func Decode(r io.Reader, format Format) (Request, error) {
	var req Request
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&req); err != nil {
			return Request{}, fmt.Errorf("decode json request: %w", err)
		}
	case FormatYAML:
		var doc any
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return Request{}, fmt.Errorf("decode yaml request: %w", err)
		}
		// Round-trip through JSON so the json tags on specs apply.
		data, err := json.Marshal(doc)
		if err != nil {
			return Request{}, fmt.Errorf("decode yaml request: %w", err)
		}
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&req); err != nil {
			return Request{}, fmt.Errorf("decode yaml request: %w", err)
		}
	default:
		return Request{}, fmt.Errorf("unsupported request format %q", format)
	}
	return req, nil
}
