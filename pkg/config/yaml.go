package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// ToYAML encodes c as YAML. CLI-only fields are left out.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// ToTOML encodes c as TOML.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode toml: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader is ToYAML preceded by header and a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}
	out := []byte(header)
	if out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	out = append(out, '\n')
	return append(out, body...), nil
}

// FromYAML decodes a YAML configuration file.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &cfg, nil
}

// FromTOML decodes a TOML configuration file and rejects unknown keys.
func FromTOML(data []byte) (*Config, error) {
	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	if extra := meta.Undecoded(); len(extra) > 0 {
		return nil, fmt.Errorf("parse toml: unknown key %q", extra[0].String())
	}
	return &cfg, nil
}

// Clone returns a copy of c that shares no slices or maps with it.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.Extensions = slices.Clone(c.Extensions)
	out.Ignore = slices.Clone(c.Ignore)
	out.Languages = maps.Clone(c.Languages)
	out.Rules = maps.Clone(c.Rules)
	return &out
}
