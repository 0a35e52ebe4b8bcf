package cli

import (
	"bytes"

	"github.com/spf13/cobra"
)

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	defer resetHelpFlags(rootCmd)

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetHelpFlags clears --help values left set by a previous execute,
// since cobra keeps flag state on the shared command tree between runs.
func resetHelpFlags(cmd *cobra.Command) {
	if f := cmd.Flags().Lookup("help"); f != nil {
		_ = f.Value.Set("false")
		f.Changed = false
	}
	for _, c := range cmd.Commands() {
		resetHelpFlags(c)
	}
}
