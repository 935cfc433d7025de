package main

import (
	"os/exec"
	"regexp"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/shapestone/shape-tab/pkg/tab"
)

// Hard-coded headers and line patterns for the process-backed commands.
// Lines that do not match (ls's "total" line, ps's own header) are
// dropped by Capture.
var (
	lsHeader  = "MODE LINKS OWNER GROUP SIZE DATE NAME"
	lsPattern = regexp.MustCompile(
		`^([-dlbcps][-rwxsStT]{9}[.+@]?)\s+(\d+)\s+(\S+)\s+(\S+)\s+(\d+)\s+(\S+\s+\S+\s+\S+)\s+(.+)$`)

	psHeader  = "PID TTY TIME CMD"
	psPattern = regexp.MustCompile(`^\s*(\d+)\s+(\S+)\s+([\d:.]+)\s+(.+)$`)
)

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [dir]",
		Short: "Run ls -l and render the listing as a table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdline := []string{"-l"}
			if len(args) == 1 {
				cmdline = append(cmdline, args[0])
			}
			return runCapture(cmd, exec.Command("ls", cmdline...), lsPattern, lsHeader)
		},
	}
}

func newPsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ps",
		Short: "Run ps and render the process list as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapture(cmd, exec.Command("ps"), psPattern, psHeader)
		},
	}
}

// runCapture pipes an external command's stdout through Capture.
func runCapture(cmd *cobra.Command, proc *exec.Cmd, pattern *regexp.Regexp, header string) error {
	logger := newLogger()

	out, err := proc.StdoutPipe()
	if err != nil {
		return err
	}
	if err := proc.Start(); err != nil {
		return err
	}

	captureErr := tab.Capture(out, pattern, header, cmd.OutOrStdout(),
		tab.WithDroppedLineHandler(func(line int, content string) {
			level.Debug(logger).Log("msg", "dropped line", "line", line, "content", content)
		}))

	if err := proc.Wait(); err != nil {
		return err
	}
	return captureErr
}
