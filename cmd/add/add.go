package add

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/podsync-io/podsync/cmd/util"
	"github.com/podsync-io/podsync/pkg/config"
	"github.com/podsync-io/podsync/pkg/errors"
)

// Mocked for unit testing.
var (
	stdout       io.Writer = os.Stdout
	fs                     = afero.NewOsFs()
	writeProject           = config.WriteProject
	getProject             = util.GetProject
)

// New creates a new `add` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "add PATH...",
		Short: "Track files for syncing to the pod",
		Args:  cobra.MinimumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := run(args); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
}

func run(paths []string) error {
	project, dir, err := getProject()
	if err != nil {
		return err
	}

	// Warn about paths that don't exist yet. They're still tracked -- the
	// user may be about to create them -- but a typo is the common case.
	for _, path := range paths {
		exists, err := afero.Exists(fs, filepath.Join(dir, path))
		if err == nil && !exists {
			log.WithField("path", path).Warn("File doesn't exist locally")
		}
	}

	updated, result, err := config.AddFiles(project, paths)
	if err != nil {
		return err
	}

	if err := writeProject(dir, updated); err != nil {
		return errors.WithContext(err, "write project config")
	}

	for _, path := range result.Added {
		fmt.Fprintf(stdout, "Tracking %s\n", path)
	}
	for _, path := range result.AlreadyTracked {
		fmt.Fprintf(stdout, "%s is already tracked\n", path)
	}
	return nil
}
