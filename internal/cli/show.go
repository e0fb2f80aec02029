package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tikzdoc/pkg/scene"
)

const (
	highlightLexer     = "latex"
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

// showCommand creates the show command, which prints the markup of a scene.
func (c *CLI) showCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "show [scene]",
		Short: "Print the LaTeX markup of a scene",
		Long: `Print the LaTeX markup of a scene to stdout.

On a terminal the markup is syntax highlighted; use --plain to disable this.
Nothing is written to disk.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveScene(args)
			if err != nil || path == "" {
				return err
			}
			w := cmd.OutOrStdout()
			return c.runShow(cmd.Context(), w, path, plain || !isTerminal(w))
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "disable syntax highlighting")

	return cmd
}

func (c *CLI) runShow(ctx context.Context, w io.Writer, path string, plain bool) error {
	c.Logger.Debug("loading scene", "path", path)
	doc, err := scene.LoadFile(path)
	if err != nil {
		return err
	}
	lines, err := doc.Export()
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	c.Logger.Debug("exported document", "lines", len(lines))

	if plain {
		_, err := lines.WriteTo(w)
		return err
	}
	return highlight(w, lines.String())
}

// highlight writes LaTeX source with ANSI colors.
func highlight(w io.Writer, src string) error {
	if err := quick.Highlight(w, src, highlightLexer, highlightFormatter, highlightStyle); err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	return nil
}
