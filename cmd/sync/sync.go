package sync

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/podsync-io/podsync/cmd/util"
	"github.com/podsync-io/podsync/pkg/errors"
	filesync "github.com/podsync-io/podsync/pkg/sync"
)

// Mocked for unit testing.
var (
	stdout     io.Writer = os.Stdout
	dial                 = util.Dial
	getProject           = util.GetProject
)

type syncFlags struct {
	dryRun bool
	wait   time.Duration
}

// New creates a new `sync` command.
func New() *cobra.Command {
	var flags syncFlags
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy changed tracked files to the pod",
		Long: "Copy tracked files to the pod.\n" +
			"Only files whose contents differ from the pod's copy are " +
			"transferred. The comparison costs a single round trip no matter " +
			"how many files are tracked.",
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(flags); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false,
		"Show what would be copied without copying anything.")
	cmd.Flags().DurationVar(&flags.wait, "wait", 0,
		"Poll the provider for up to this long if the pod's SSH endpoint isn't up yet.")
	return cmd
}

func run(flags syncFlags) error {
	project, dir, err := getProject()
	if err != nil {
		return err
	}
	if err := util.ValidateSyncable(project); err != nil {
		return err
	}

	client, err := dial(project, flags.wait)
	if err != nil {
		return err
	}
	defer client.Close()

	remoteDigests := filesync.ProbeRemote(client, project.RemoteDir, project.Files)
	statuses := filesync.ComputeStatuses(dir, project.Files, remoteDigests)

	executor := filesync.Executor{
		Runner:    client,
		Copier:    client,
		LocalDir:  dir,
		RemoteDir: project.RemoteDir,
		DryRun:    flags.dryRun,
		Out:       stdout,
	}
	report := executor.Run(statuses)

	verb := "Copied"
	if flags.dryRun {
		verb = "Would copy"
	}
	fmt.Fprintf(stdout, "%s %d files, %d unchanged.\n",
		verb, report.Synced, report.Unchanged)
	for _, file := range report.Missing {
		fmt.Fprintf(stdout, "Skipped %s: doesn't exist locally. "+
			"Untrack it with `podsync remove %s`.\n", file, file)
	}

	if len(report.Failed) > 0 {
		return errors.NewFriendlyError("Failed to copy %d files:\n  %s",
			len(report.Failed), strings.Join(report.Failed, "\n  "))
	}
	return nil
}
