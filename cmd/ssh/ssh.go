package ssh

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/podsync-io/podsync/cmd/util"
	"github.com/podsync-io/podsync/pkg/errors"
)

// New creates a new `ssh` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "ssh",
		Short: "Get a shell on the pod",
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
}

func run() error {
	project, _, err := util.GetProject()
	if err != nil {
		return err
	}
	if project.PodID == "" {
		return util.ErrNoPod
	}

	client, err := util.Dial(project, 0)
	if err != nil {
		return err
	}
	defer client.Close()

	width, height, err := terminal.GetSize(0)
	if err != nil {
		width, height = 80, 40
	}

	// Put the terminal into raw mode to prevent it echoing characters twice.
	oldState, err := terminal.MakeRaw(0)
	if err != nil {
		return errors.WithContext(err, "set terminal mode")
	}

	defer func() {
		_ = terminal.Restore(0, oldState)
	}()

	return client.Shell(os.Stdin, os.Stdout, os.Stderr, width, height)
}
