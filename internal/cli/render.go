package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tikzdoc/pkg/pipeline"
)

// renderCommand creates the render command: scene → .tex (→ .pdf).
func (c *CLI) renderCommand() *cobra.Command {
	var useCache bool
	opts := pipeline.Options{
		Compiler:       pipeline.DefaultCompiler,
		CompileTimeout: pipeline.DefaultCompileTimeout,
	}

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Write the LaTeX document for a scene",
		Long: `Write the LaTeX document for a scene file.

The scene (TOML or JSON) is turned into a part tree and exported to a .tex
file next to it, or to the path given with -o. With --compile the file is
also run through the LaTeX engine.

Compiled PDFs can be cached by markup hash with --cache, so re-rendering an
unchanged scene does not run the engine again. Without a scene argument on a
terminal, an interactive picker lists the scenes in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveScene(args)
			if err != nil || path == "" {
				return err
			}
			opts.Scene = path
			return c.runRender(cmd.Context(), opts, useCache)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output .tex file (default: scene path with .tex extension)")
	cmd.Flags().BoolVar(&opts.Compile, "compile", false, "compile the document to PDF")
	addCompilerFlags(cmd, &opts.Compiler, &opts.CompileTimeout)
	cmd.Flags().BoolVar(&useCache, "cache", false, "cache compiled PDFs by markup hash")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached PDFs and recompile")

	return cmd
}

// addCompilerFlags registers the flags shared by commands that run the
// LaTeX engine.
func addCompilerFlags(cmd *cobra.Command, engine *string, timeout *time.Duration) {
	cmd.Flags().StringVar(engine, "compiler", *engine, "LaTeX engine executable")
	cmd.Flags().DurationVar(timeout, "timeout", *timeout, "maximum duration of one engine run")
}

// runRender executes the pipeline and reports the produced files.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, useCache bool) error {
	runner, err := c.newRunner(useCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Cache.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	var spinner *Spinner
	if opts.Compile {
		spinner = newSpinner(ctx, fmt.Sprintf("Compiling with %s...", opts.Compiler))
		spinner.Start()
	}

	result, err := runner.Execute(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done("Rendered " + opts.Scene)

	printSuccess("Rendered %s", opts.Scene)
	printFile(result.TexPath)
	if result.PDFPath != "" {
		printFile(result.PDFPath)
	}
	printStats(result.Stats.PartCount, result.Stats.LineCount, result.Stats.ColorCount,
		opts.Compile, result.CacheInfo.ArtifactHit)

	if res := result.Compile; res != nil && !res.Success {
		printWarning("%s exited with code %d", opts.Compiler, res.ExitCode)
		for _, line := range res.Errors() {
			printDetail("%s", line)
		}
		return fmt.Errorf("compilation of %s failed", result.TexPath)
	}
	if !opts.Compile {
		printNextStep("Compile it", fmt.Sprintf("%s render %s --compile", appName, opts.Scene))
	}
	return nil
}

// resolveScene returns the scene named on the command line or, on an
// interactive terminal, lets the user pick one. An empty path with a nil
// error means the user cancelled the picker.
func resolveScene(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return "", fmt.Errorf("no scene file given")
	}
	return pickScene(".")
}
