package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tikzdoc/pkg/errors"
	"github.com/matzehuels/tikzdoc/pkg/scene"
	"github.com/matzehuels/tikzdoc/pkg/treeviz"
)

const (
	treeFormatDOT = "dot"
	treeFormatSVG = "svg"
)

// treeCommand creates the tree command, which draws the part tree.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "tree [scene]",
		Short: "Draw the part tree of a scene",
		Long: `Draw the part tree of a scene with Graphviz.

Without -o the DOT source is printed to stdout. With -o the format follows
the file extension: .dot writes DOT source, .svg renders the diagram.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveScene(args)
			if err != nil || path == "" {
				return err
			}
			return c.runTree(cmd.Context(), cmd.OutOrStdout(), path, output, treeviz.Options{Detailed: detailed})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.dot or .svg)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show options and point counts")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, stdout io.Writer, path, output string, opts treeviz.Options) error {
	doc, err := scene.LoadFile(path)
	if err != nil {
		return err
	}
	dot := treeviz.ToDOT(doc, opts)

	if output == "" {
		_, err := io.WriteString(stdout, dot)
		return err
	}

	format, err := treeFormat(output)
	if err != nil {
		return err
	}
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}

	data := []byte(dot)
	if format == treeFormatSVG {
		c.Logger.Info("Rendering part tree SVG")
		if data, err = treeviz.RenderSVG(ctx, dot); err != nil {
			return err
		}
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", output)
	}

	c.Logger.Debugf("Generated %s: %d bytes", format, len(data))
	printSuccess("Drew part tree of %s", path)
	printFile(output)
	return nil
}

func treeFormat(output string) (string, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(output), ".")); ext {
	case treeFormatDOT, treeFormatSVG:
		return ext, nil
	default:
		return "", fmt.Errorf("invalid tree output %s (must end in .dot or .svg)", output)
	}
}
