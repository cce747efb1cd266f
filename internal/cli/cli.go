// Package cli implements the command line of a build definition program.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/smelt/internal/app"
	"go.trai.ch/smelt/internal/build"
	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/core/ports"
)

// Runner executes the options parsed from the command line.
type Runner interface {
	Run(ctx context.Context, opts app.Options) error
}

// CLI represents the command line interface of a build definition.
type CLI struct {
	runner  Runner
	logger  ports.Logger
	rootCmd *cobra.Command
	args    []string
}

// New creates a CLI named name that hands parsed options to runner.
func New(name string, runner Runner, logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           name + " [flags] [goal...] [NAME=VALUE...]",
		Short:         "Build the goals of this project",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Info(),
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the build information"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show this help"

	flags := rootCmd.Flags()
	flags.BoolP("list", "l", false, "List the public tasks and the settings")
	flags.BoolP("all", "a", false, "Run every public task")
	flags.BoolP("clean", "c", false, "Clear the signature cache before anything else runs")
	flags.BoolP("watch", "w", false, "Run the goals again when a used file changes")
	flags.StringP("output-mode", "o", "", "Output mode: auto, tui or linear")

	c := &CLI{
		runner:  runner,
		logger:  logger,
		rootCmd: rootCmd,
	}
	rootCmd.RunE = c.run
	return c
}

// SetArgs sets the arguments parsed by Execute. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.args = args
}

// SetOutput redirects help and version output.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

// Execute parses the arguments and runs the root command with ctx.
// Unknown flags are reported and ignored.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetArgs(c.dropUnknownFlags(c.args))
	return c.rootCmd.ExecuteContext(ctx)
}

func (c *CLI) run(cmd *cobra.Command, args []string) error {
	if len(c.args) == 0 {
		return cmd.Help()
	}

	flags := cmd.Flags()
	opts := app.Options{}
	opts.List, _ = flags.GetBool("list")
	opts.All, _ = flags.GetBool("all")
	opts.Clean, _ = flags.GetBool("clean")
	opts.Watch, _ = flags.GetBool("watch")
	opts.OutputMode, _ = flags.GetString("output-mode")

	for _, arg := range args {
		if !domain.IsAssignment(arg) {
			opts.Goals = append(opts.Goals, arg)
			continue
		}
		a, err := domain.ParseAssignment(arg)
		if err != nil {
			return err
		}
		opts.Assignments = append(opts.Assignments, a)
	}

	return c.runner.Run(cmd.Context(), opts)
}

// dropUnknownFlags removes the flags the root command does not define, logging each one.
func (c *CLI) dropUnknownFlags(args []string) []string {
	flags := c.rootCmd.Flags()
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(out, args[i:]...)
		case strings.HasPrefix(arg, "--"):
			name, _, hasValue := strings.Cut(arg[2:], "=")
			f := flags.Lookup(name)
			if f == nil {
				c.logger.Warn("No option '" + arg + "' found")
				continue
			}
			out = append(out, arg)
			if !hasValue && takesValue(f) && i+1 < len(args) {
				i++
				out = append(out, args[i])
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			f, ok := shorthands(flags, arg[1:])
			if !ok {
				c.logger.Warn("No option '" + arg + "' found")
				continue
			}
			out = append(out, arg)
			if f != nil && takesValue(f) && i+1 < len(args) {
				i++
				out = append(out, args[i])
			}
		default:
			out = append(out, arg)
		}
	}
	return out
}

// shorthands checks a group of single-letter flags such as -lc. It returns the last flag
// when it expects its value in the next argument.
func shorthands(flags *pflag.FlagSet, group string) (*pflag.Flag, bool) {
	for i := 0; i < len(group); i++ {
		f := flags.ShorthandLookup(group[i : i+1])
		if f == nil {
			return nil, false
		}
		if takesValue(f) {
			// The rest of the group is the value.
			if i+1 < len(group) {
				return nil, true
			}
			return f, true
		}
	}
	return nil, true
}

func takesValue(f *pflag.Flag) bool {
	return f.NoOptDefVal == ""
}
