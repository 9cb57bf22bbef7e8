// Package config loads formatter settings from .satysfi-formatter.yaml
// files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/usagrada/satysfi-formatter/internal/formatter"
)

// FileName is the name of the configuration file searched for next to the
// formatted sources.
const FileName = ".satysfi-formatter.yaml"

// File is the on-disk form of the settings. Absent keys keep the defaults.
type File struct {
	RowLength         *int  `yaml:"row_length" validate:"omitnil,min=1,max=1000"`
	IndentUnit        *int  `yaml:"indent_unit" validate:"omitnil,min=0,max=16"`
	CommandArgSpacing *bool `yaml:"command_arg_spacing"`
}

var validate = validator.New()

// Parse decodes and validates a configuration document. Unknown keys are
// rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			v := verrs[0]
			return nil, fmt.Errorf("invalid config: %s must satisfy %s=%s", yamlName(v.Field()), v.Tag(), v.Param())
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &f, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Find returns the nearest configuration file at or above dir, or "" when
// there is none.
func Find(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Apply overlays the settings present in f onto cfg.
func (f *File) Apply(cfg formatter.Config) formatter.Config {
	if f == nil {
		return cfg
	}
	if f.RowLength != nil {
		cfg.RowLength = *f.RowLength
	}
	if f.IndentUnit != nil {
		cfg.IndentUnit = *f.IndentUnit
	}
	if f.CommandArgSpacing != nil {
		cfg.CommandArgSpacing = *f.CommandArgSpacing
	}
	return cfg
}

// ForFile resolves the settings for the source at path: the explicit
// config file when one is given, otherwise the nearest discovered one,
// applied over the defaults.
func ForFile(path, explicit string) (formatter.Config, error) {
	cfg := formatter.DefaultConfig()
	if explicit == "" {
		explicit = Find(filepath.Dir(path))
	}
	if explicit == "" {
		return cfg, nil
	}
	f, err := Load(explicit)
	if err != nil {
		return cfg, err
	}
	return f.Apply(cfg), nil
}

func yamlName(field string) string {
	switch field {
	case "RowLength":
		return "row_length"
	case "IndentUnit":
		return "indent_unit"
	case "CommandArgSpacing":
		return "command_arg_spacing"
	}
	return field
}
