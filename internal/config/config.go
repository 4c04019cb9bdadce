// Package config defines the configuration model for the athlete
// normalization pipeline. A pipeline file (configs/pipelines/*.json or
// *.yaml) decodes into Pipeline and is passed through the program without
// additional glue code.
//
// Example (trimmed):
//
//	{
//	  "job":      "bios",
//	  "source":   { "kind": "file", "file": { "path": "data/bios.csv" } },
//	  "parser":   { "kind": "csv", "options": { "has_header": true } },
//	  "transform":[
//	    { "kind": "dedup" },
//	    { "kind": "split_born" },
//	    { "kind": "require", "options": { "fields": ["noc"] } }
//	  ],
//	  "output":   { "path": "data/bios_clean.csv" },
//	  "storage":  { "kind": "sqlite", "db": { "dsn": "bios.db", "table": "athletes" } }
//	}
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// ErrUnknownFormat is returned by Load for files that are neither JSON nor
// YAML.
var ErrUnknownFormat = errors.New("config: unknown file format")

// Pipeline is the top-level object decoded from a pipeline file.
type Pipeline struct {
	// Job names the run for logs and metrics grouping.
	Job string `json:"job" yaml:"job" validate:"required"`

	// Source describes where input data comes from.
	Source Source `json:"source" yaml:"source"`

	// Parser configures how raw bytes are turned into records.
	Parser Parser `json:"parser" yaml:"parser"`

	// Transform lists the ordered transformations applied to parsed records.
	// When empty the default normalization chain is used.
	Transform []Transform `json:"transform" yaml:"transform" validate:"dive"`

	// Output is the cleaned file written at the end of the run.
	Output Output `json:"output" yaml:"output"`

	// Storage optionally mirrors the cleaned table into a database.
	Storage Storage `json:"storage" yaml:"storage"`
}

// Source identifies the data source.
type Source struct {
	Kind string     `json:"kind" yaml:"kind" validate:"required"`
	File SourceFile `json:"file" yaml:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	Path string `json:"path" yaml:"path"`
}

// Parser selects how to parse the raw source into rows.
type Parser struct {
	// Kind is "csv" or "xlsx".
	Kind string `json:"kind" yaml:"kind" validate:"required"`

	// Options is interpreted by the parser implementation. For CSV:
	//   has_header (bool), comma (string), trim_space (bool),
	//   encoding (string), header_map (object)
	// For XLSX: sheet (string), header_map (object).
	Options Options `json:"options" yaml:"options"`
}

// Transform defines a single step of the transformation chain.
type Transform struct {
	Kind    string  `json:"kind" yaml:"kind" validate:"required"`
	Options Options `json:"options" yaml:"options"`
}

// Output configures the cleaned-table file.
type Output struct {
	Path string `json:"path" yaml:"path" validate:"required"`

	// Format is "csv" (default) or "xlsx".
	Format string `json:"format" yaml:"format" validate:"omitempty,oneof=csv xlsx"`

	// Sheet names the worksheet for xlsx output.
	Sheet string `json:"sheet" yaml:"sheet"`
}

// Storage selects an optional database sink. An empty Kind disables it.
type Storage struct {
	Kind string   `json:"kind" yaml:"kind"`
	DB   DBConfig `json:"db" yaml:"db"`
}

// DBConfig configures the database sink.
type DBConfig struct {
	// DSN is the driver-specific connection string.
	DSN string `json:"dsn" yaml:"dsn"`

	// Table is the target table name, optionally schema-qualified.
	Table string `json:"table" yaml:"table"`

	// AutoCreateTable creates the table from the output schema when missing.
	AutoCreateTable bool `json:"auto_create_table" yaml:"auto_create_table"`

	// BatchSize bounds the rows sent per bulk insert. Zero uses the default.
	BatchSize int `json:"batch_size" yaml:"batch_size" validate:"gte=0"`
}

// Enabled reports whether a database sink is configured.
func (s Storage) Enabled() bool { return strings.TrimSpace(s.Kind) != "" }

// Load reads a pipeline file, choosing the decoder from its extension.
func Load(path string) (Pipeline, error) {
	var p Pipeline
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, &p)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &p)
	default:
		return p, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return p, fmt.Errorf("decode config %s: %w", path, err)
	}
	p.fillOptions()
	return p, nil
}

// fillOptions replaces absent options objects with empty maps; decoders
// leave them nil when the key is missing.
func (p *Pipeline) fillOptions() {
	if p.Parser.Options == nil {
		p.Parser.Options = Options{}
	}
	for i := range p.Transform {
		if p.Transform[i].Options == nil {
			p.Transform[i].Options = Options{}
		}
	}
}

// Options is a small helper to fetch typed values from free-form maps. It
// performs only minimal type coercion and returns the provided default when a
// key is absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers decode as float64
// and YAML integers as int; both are accepted.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns the string-valued entries of an object value. Returns an
// empty map when the key is missing or not an object.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		if m, ok := v.(map[string]any); ok {
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		}
	}
	return res
}

// StringSlice returns a []string for key when the value is an array of
// strings. Returns nil when the key is missing or not an array.
func (o Options) StringSlice(key string) []string {
	if v, ok := o[key]; ok {
		switch vv := v.(type) {
		case []any:
			out := make([]string, 0, len(vv))
			for _, x := range vv {
				if s, ok := x.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return vv
		}
	}
	return nil
}

// Any returns the raw value for key.
func (o Options) Any(key string) any {
	if v, ok := o[key]; ok {
		return v
	}
	return nil
}

// UnmarshalJSON makes a null "options" object decode to a non-nil, empty
// Options map. An absent key is handled by Load.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}

// UnmarshalYAML decodes a YAML mapping into Options. yaml.v2 produces
// map[interface{}]interface{} for nested mappings; those are converted so the
// typed getters behave the same as for JSON input.
func (o *Options) UnmarshalYAML(unmarshal func(any) error) error {
	var tmp map[string]any
	if err := unmarshal(&tmp); err != nil {
		return err
	}
	out := make(Options, len(tmp))
	for k, v := range tmp {
		out[k] = normalizeYAML(v)
	}
	*o = out
	return nil
}

func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[fmt.Sprint(k)] = normalizeYAML(vv)
		}
		return m
	case []any:
		for i := range t {
			t[i] = normalizeYAML(t[i])
		}
		return t
	}
	return v
}
