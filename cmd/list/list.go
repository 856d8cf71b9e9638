package list

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/podsync-io/podsync/cmd/util"
)

// Mocked for unit testing.
var (
	stdout     io.Writer = os.Stdout
	getProject           = util.GetProject
)

// New creates a new `list` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the tracked files",
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
}

func run() error {
	project, _, err := getProject()
	if err != nil {
		return err
	}

	if len(project.Files) == 0 {
		fmt.Fprintln(stdout, "No files are tracked. Track one with `podsync add PATH`.")
		return nil
	}

	for _, file := range project.Files {
		fmt.Fprintln(stdout, file)
	}
	return nil
}
