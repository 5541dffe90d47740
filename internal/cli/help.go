package cli

import (
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/lexkeep/internal/ui/pretty"
)

// helpStyles colour the parts of command help.
type helpStyles struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{command: plain, heading: plain, name: plain, flag: plain, dim: plain}
	}
	return helpStyles{
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders cobra help and usage with lipgloss styles.
type HelpFormatter struct {
	styles helpStyles
}

// NewHelpFormatter creates a formatter for the given --color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}{{end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}{{end}}
{{- if .HasAvailableSubCommands}}

{{ dim (printf "Use \"%s [command] --help\" for more information about a command." .CommandPath) }}{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}`

// ApplyToCommand installs styled help and usage on cmd; subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := template.FuncMap{
		"command": h.styles.command.Render,
		"heading": h.styles.heading.Render,
		"name":    h.styles.name.Render,
		"dim":     h.styles.dim.Render,
		"flags":   h.styleFlags,
		"rpad":    rpad,
		"trim":    func(s string) string { return strings.TrimRightFunc(s, isSpace) },
	}
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return usage.Execute(c.OutOrStderr(), c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// styleFlags colours the flag names of a pflag usage block and leaves
// the alignment pflag computed intact.
func (h *HelpFormatter) styleFlags(usages string) string {
	lines := strings.Split(strings.TrimRightFunc(usages, isSpace), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if !strings.HasPrefix(trimmed, "-") {
			continue
		}
		lead := line[:len(line)-len(trimmed)]
		end := strings.Index(trimmed, "   ")
		if end < 0 {
			end = len(trimmed)
		}
		lines[i] = lead + h.styles.flag.Render(trimmed[:end]) + trimmed[end:]
	}
	return strings.Join(lines, "\n")
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}

func rpad(s string, padding int) string {
	if len(s) >= padding {
		return s
	}
	return s + strings.Repeat(" ", padding-len(s))
}
