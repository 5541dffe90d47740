package config

import (
	"fmt"
)

// Template formats.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

const yamlTemplate = `# lexkeep configuration

# Indentation of inserted nodes: canonical or inherit
indent: canonical

# Line ending for files that contain no line break: lf, crlf, cr,
# or empty to report such files as errors
line_ending: lf

# Markdown flavor: commonmark or gfm
flavor: commonmark

# File extensions processed by 'lexkeep check'
extensions: [".java", ".go", ".py", ".js", ".rs", ".md"]

# Extension to language overrides
# languages:
#   ".jav": java

# Rule tables overriding the built-in layout for a language
# rules:
#   java: lexkeep-java.yaml

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"

# Backups made before 'lexkeep edit --write' replaces a file
backups:
  enabled: true
  mode: sidecar
`

const tomlTemplate = `# lexkeep configuration

# Indentation of inserted nodes: canonical or inherit
indent = "canonical"

# Line ending for files that contain no line break: lf, crlf, cr,
# or empty to report such files as errors
line_ending = "lf"

# Markdown flavor: commonmark or gfm
flavor = "commonmark"

# File extensions processed by 'lexkeep check'
extensions = [".java", ".go", ".py", ".js", ".rs", ".md"]

# File patterns to ignore (glob patterns)
# ignore = ["vendor/**"]

# [languages]
# ".jav" = "java"

# [rules]
# java = "lexkeep-java.yaml"

# Backups made before 'lexkeep edit --write' replaces a file
[backups]
enabled = true
mode = "sidecar"
`

// GenerateTemplate returns a commented configuration file in the given
// format ("yaml" or "toml").
func GenerateTemplate(format string) ([]byte, error) {
	switch format {
	case TemplateYAML, "yml", "":
		return []byte(yamlTemplate), nil
	case TemplateTOML:
		return []byte(tomlTemplate), nil
	default:
		return nil, fmt.Errorf("unknown template format %q; must be yaml or toml", format)
	}
}
