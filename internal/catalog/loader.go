package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/common/fsutil"
	"github.com/danlaudk/lambda-ai-apart-hackathon-25/pkg/types"
)

//go:embed catalog.schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("catalog.schema.json", schemaJSON)

type file struct {
	Models []types.Model `json:"models"`
}

// LoadFile reads a catalog from a .yaml/.yml, .json or .toml file. The
// document is validated against the embedded schema before decoding.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf("empty catalog path")
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var raw any
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &raw)
	case ".json":
		err = json.Unmarshal(b, &raw)
	case ".toml":
		err = toml.Unmarshal(b, &raw)
	default:
		return nil, fmt.Errorf("unsupported catalog extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", p, err)
	}
	return decode(raw)
}

// decode normalizes raw through JSON so every source format validates and
// decodes identically.
func decode(raw any) (*Catalog, error) {
	norm, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize catalog: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(norm))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("normalize catalog: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}
	var f file
	if err := json.Unmarshal(norm, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(f.Models)
}
