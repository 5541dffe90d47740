package config

import "fmt"

// ParseFormat validates an output format name.
func ParseFormat(name string) (OutputFormat, error) {
	switch f := OutputFormat(name); f {
	case FormatText, FormatJSON, FormatDiff:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q; must be one of: text, json, diff", name)
	}
}
