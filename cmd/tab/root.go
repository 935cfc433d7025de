// Command tab converts between aligned tabular text and other formats.
//
// One subcommand selects one transcoder. Input is stdin or an optional
// file argument; output is always stdout.
package main

import (
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/shapestone/shape-tab/pkg/tab"
)

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tab",
		Short: "Convert between aligned tabular text and other formats",
		Long: `tab reads and writes a line-oriented tabular text format with
space-aligned columns. The first line of every table is a header.

Fields containing spaces, quotes, or control characters are double-quoted
with backslash escapes (\t \n \" \\).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"report dropped lines on stderr")

	root.AddCommand(
		newAlignCmd(),
		newReformatCmd(),
		newFromJSONCmd(),
		newFromYAMLCmd(),
		newFromTOMLCmd(),
		newToJSONCmd(),
		newToYAMLCmd(),
		newLsCmd(),
		newPsCmd(),
	)
	return root
}

// newLogger builds the diagnostic logger. Without --verbose everything
// below info is filtered, so dropped-line reports stay silent by default.
func newLogger() log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

// openInput returns the input stream for a command: the file named by the
// first argument, or the command's stdin.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(args[0])
}

func newAlignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "align [file]",
		Short: "Re-align a table's columns to fit the widest value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			return tab.Align(in, cmd.OutOrStdout())
		},
	}
}

func newReformatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reformat HEADER [file]",
		Short: "Project a table onto a new header's columns",
		Long: `Reformat reads a table and writes it with the columns named by
HEADER, in HEADER's order. Columns absent from the input render as "".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args[1:])
			if err != nil {
				return err
			}
			defer in.Close()
			return tab.Reformat(args[0], in, cmd.OutOrStdout())
		},
	}
}

func newFromJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "from-json [file]",
		Short: "Render a JSON document as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			return tab.FromJSON(in, cmd.OutOrStdout())
		},
	}
}

func newFromYAMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "from-yaml [file]",
		Short: "Render a YAML document as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			return tab.FromYAML(in, cmd.OutOrStdout())
		},
	}
}

func newFromTOMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "from-toml [file]",
		Short: "Render a TOML document as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			return tab.FromTOML(in, cmd.OutOrStdout())
		},
	}
}

func newToJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "to-json [file]",
		Short: "Convert a table to a JSON array of objects",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			return tab.ToJSON(in, cmd.OutOrStdout())
		},
	}
}

func newToYAMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "to-yaml [file]",
		Short: "Convert a table to a YAML sequence of maps",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer in.Close()
			return tab.ToYAML(in, cmd.OutOrStdout())
		},
	}
}
