package digest

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/podsync-io/podsync/cmd/util"
	"github.com/podsync-io/podsync/pkg/sync"
)

// Mocked for unit testing.
var (
	stdout     io.Writer = os.Stdout
	dial                 = util.Dial
	getProject           = util.GetProject
)

// New creates a new `digest` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "digest FILE",
		Short: "Print the local and remote digest of a single file",
		Long: "Print the content digest of FILE on the local machine and on " +
			"the pod. Mostly useful for debugging why `podsync status` " +
			"reports a file as changed.",
		Args: cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := run(args[0]); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
}

func run(file string) error {
	project, dir, err := getProject()
	if err != nil {
		return err
	}
	if project.PodID == "" {
		return util.ErrNoPod
	}

	localDigest, err := sync.HashFile(filepath.Join(dir, file))
	if err != nil {
		fmt.Fprintf(stdout, "local:  unreadable (%s)\n", err)
	} else {
		fmt.Fprintf(stdout, "local:  %s\n", localDigest)
	}

	client, err := dial(project, 0)
	if err != nil {
		return err
	}
	defer client.Close()

	remoteDigest, err := sync.RemoteDigest(client, path.Join(project.RemoteDir, file))
	if err != nil {
		fmt.Fprintf(stdout, "remote: absent or unreadable\n")
		return nil
	}
	fmt.Fprintf(stdout, "remote: %s\n", remoteDigest)
	return nil
}
