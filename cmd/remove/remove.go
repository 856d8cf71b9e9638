package remove

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/podsync-io/podsync/cmd/util"
	"github.com/podsync-io/podsync/pkg/config"
	"github.com/podsync-io/podsync/pkg/errors"
)

// Mocked for unit testing.
var (
	stdout       io.Writer = os.Stdout
	writeProject           = config.WriteProject
	getProject             = util.GetProject
)

type removeFlags struct {
	all          bool
	pruneMissing bool
}

// New creates a new `remove` command.
func New() *cobra.Command {
	var flags removeFlags
	cmd := &cobra.Command{
		Use:   "remove [PATH...]",
		Short: "Stop tracking files",
		Run: func(_ *cobra.Command, args []string) {
			if err := run(args, flags); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().BoolVar(&flags.all, "all", false,
		"Stop tracking every file.")
	cmd.Flags().BoolVar(&flags.pruneMissing, "prune-missing", false,
		"Also stop tracking files that no longer exist locally.")
	return cmd
}

func run(paths []string, flags removeFlags) error {
	if len(paths) == 0 && !flags.all && !flags.pruneMissing {
		return errors.NewFriendlyError(
			"Nothing to remove.\n" +
				"Pass the paths to stop tracking, or use --all or --prune-missing.")
	}

	project, dir, err := getProject()
	if err != nil {
		return err
	}

	if flags.all {
		count := len(project.Files)
		project.Files = nil
		if err := writeProject(dir, project); err != nil {
			return errors.WithContext(err, "write project config")
		}
		fmt.Fprintf(stdout, "Stopped tracking %d files\n", count)
		return nil
	}

	updated, result, err := config.RemoveFiles(project, paths, flags.pruneMissing, dir)
	if err != nil {
		return err
	}

	if err := writeProject(dir, updated); err != nil {
		return errors.WithContext(err, "write project config")
	}

	for _, path := range result.Removed {
		fmt.Fprintf(stdout, "Stopped tracking %s\n", path)
	}
	for _, path := range result.PrunedMissing {
		fmt.Fprintf(stdout, "Stopped tracking %s (missing locally)\n", path)
	}
	for _, path := range result.NotTracked {
		fmt.Fprintf(stdout, "%s isn't tracked\n", path)
	}
	return nil
}
