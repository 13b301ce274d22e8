package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/danlaudk/lambda-ai-apart-hackathon-25/internal/common/fsutil"
)

// strict decoders keyed by file extension; unknown keys are rejected so a
// misspelled setting fails at startup instead of silently keeping its default.
var decoders = map[string]func(io.Reader, *Config) error{
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".json": func(r io.Reader, c *Config) error {
		d := json.NewDecoder(r)
		d.DisallowUnknownFields()
		return d.Decode(c)
	},
	".toml": func(r io.Reader, c *Config) error {
		d := toml.NewDecoder(r)
		d.DisallowUnknownFields()
		return d.Decode(c)
	},
}

func decodeYAML(r io.Reader, c *Config) error {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	return d.Decode(c)
}

// Load reads a .yaml/.yml, .json or .toml config file. Keys absent from the
// file keep their zero value; call ApplyDefaults after merging flags.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, errors.New("empty config path")
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	ext := strings.ToLower(filepath.Ext(p))
	decode, ok := decoders[ext]
	if !ok {
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return cfg, err
	}
	if err := decode(bytes.NewReader(b), &cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse %s: %w", p, err)
	}
	return cfg, nil
}
