package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/lexkeep/internal/ui/pretty"
	"github.com/yaklabco/lexkeep/pkg/eol"
	"github.com/yaklabco/lexkeep/pkg/fsutil"
)

// eolJSON is one file in the JSON output of the eol command.
type eolJSON struct {
	Path       string `json:"path"`
	LineEnding string `json:"lineEnding,omitempty"`
	CRLF       int    `json:"crlf"`
	LF         int    `json:"lf"`
	CR         int    `json:"cr"`
	Mixed      bool   `json:"mixed"`
}

func newEOLCommand(globals *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "eol FILE...",
		Short: "Report the line-ending convention of files",
		Long: `Count the line breaks of each file by kind and report the convention
lexkeep would use for new text: the most frequent kind, with ties going to
CRLF, then LF, then CR. Files without any line break show no convention.`,
		Example: `  lexkeep eol src/*.java
  lexkeep eol --format json README.md`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if format != "text" && format != "json" {
				return fmt.Errorf("%w: invalid format %q: must be text or json", ErrUsage, format)
			}

			workDir, err := globals.workingDir()
			if err != nil {
				return err
			}

			rows := make([]pretty.EOLRow, 0, len(args))
			for _, arg := range args {
				content, _, err := fsutil.ReadFile(ctx, globals.resolve(workDir, arg))
				if err != nil {
					return err
				}
				text := string(content)
				row := pretty.EOLRow{File: arg, Counts: eol.Count(text)}
				le, err := eol.Detect(text)
				switch {
				case err == nil:
					row.Detected = true
					row.Ending = le
				case !errors.Is(err, eol.ErrNoLineBreaks):
					return fmt.Errorf("%s: %w", arg, err)
				}
				rows = append(rows, row)
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				return writeEOLJSON(out, rows)
			}

			width, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil {
				width = 0
			}
			styles := pretty.NewStyles(pretty.IsColorEnabled(globals.color, out))
			if _, err := fmt.Fprint(out, pretty.NewEOLTable(styles, width).Format(rows)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")

	return cmd
}

func writeEOLJSON(out io.Writer, rows []pretty.EOLRow) error {
	files := make([]eolJSON, 0, len(rows))
	for _, row := range rows {
		entry := eolJSON{
			Path:  row.File,
			CRLF:  row.Counts.CRLF,
			LF:    row.Counts.LF,
			CR:    row.Counts.CR,
			Mixed: row.Counts.Mixed(),
		}
		if row.Detected {
			entry.LineEnding = row.Ending.String()
		}
		files = append(files, entry)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(files); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
