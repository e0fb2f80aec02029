package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tikzdoc/pkg/compiler"
	"github.com/matzehuels/tikzdoc/pkg/pipeline"
	"github.com/matzehuels/tikzdoc/pkg/scene"
)

// checkCommand creates the check command, which compiles a scene without
// leaving files behind.
func (c *CLI) checkCommand() *cobra.Command {
	engine := pipeline.DefaultCompiler
	timeout := pipeline.DefaultCompileTimeout

	cmd := &cobra.Command{
		Use:   "check [scene]",
		Short: "Compile a scene in a scratch directory and report errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveScene(args)
			if err != nil || path == "" {
				return err
			}
			return c.runCheck(cmd.Context(), path, engine, timeout)
		},
	}

	addCompilerFlags(cmd, &engine, &timeout)

	return cmd
}

func (c *CLI) runCheck(ctx context.Context, path, engine string, timeout time.Duration) error {
	doc, err := scene.LoadFile(path)
	if err != nil {
		return err
	}
	comp, err := compiler.New(engine, compiler.WithTimeout(timeout))
	if err != nil {
		return err
	}
	c.Logger.Debug("checking scene", "path", path, "engine", comp.Path())

	spinner := newSpinner(ctx, fmt.Sprintf("Checking %s with %s...", path, comp.Name()))
	spinner.Start()

	res, err := comp.Check(ctx, doc)
	if err != nil {
		spinner.StopWithError("Check failed")
		return err
	}
	if res.Success {
		spinner.StopWithSuccess(fmt.Sprintf("%s compiles (%s)", path, res.Duration.Round(time.Millisecond)))
		return nil
	}

	spinner.StopWithError(fmt.Sprintf("%s does not compile (exit %d)", path, res.ExitCode))
	for _, line := range res.Errors() {
		printDetail("%s", line)
	}
	return fmt.Errorf("check of %s failed", path)
}
