package status

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/podsync-io/podsync/cmd/util"
	"github.com/podsync-io/podsync/pkg/sync"
)

// Mocked for unit testing.
var (
	stdout io.Writer = os.Stdout
	dial             = util.Dial
	getProject       = util.GetProject
)

// New creates a new `status` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which tracked files are out of sync with the pod",
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
}

func run() error {
	project, dir, err := getProject()
	if err != nil {
		return err
	}
	if err := util.ValidateSyncable(project); err != nil {
		return err
	}

	client, err := dial(project, 0)
	if err != nil {
		return err
	}
	defer client.Close()

	remoteDigests := sync.ProbeRemote(client, project.RemoteDir, project.Files)
	for _, fileStatus := range sync.ComputeStatuses(dir, project.Files, remoteDigests) {
		fmt.Fprintf(stdout, "%-8s %s\n", fileStatus.Status, fileStatus.Path)
	}
	return nil
}
