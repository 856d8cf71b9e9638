package sync

import (
	"fmt"
	"io"
	"path"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/podsync-io/podsync/pkg/errors"
	"github.com/podsync-io/podsync/pkg/remote"
)

// Report summarizes one sync run.
type Report struct {
	// Synced is the number of files that were copied (or, in a dry run,
	// would have been).
	Synced int

	// Unchanged is the number of files that were already up to date.
	Unchanged int

	// Missing are tracked files that don't exist locally, in tracked order.
	Missing []string

	// Failed are files whose transfer failed, in tracked order. A failure
	// never aborts the run, so this can be non-empty alongside a non-zero
	// Synced count.
	Failed []string
}

// Executor copies changed files to the pod, one at a time.
type Executor struct {
	Runner    remote.Runner
	Copier    remote.Copier
	LocalDir  string
	RemoteDir string

	// DryRun replaces the mkdir and copy side effects with a printed
	// description of the action. The diff consumed is identical.
	DryRun bool

	// Out receives the dry-run descriptions.
	Out io.Writer
}

// Run processes the status list in order. StatusSame files are skipped,
// StatusMissing files are reported, and StatusDiffers files are copied. The
// remote parent directory is created before each copy; creation and copy are
// independent remote operations, and if either fails the file is recorded in
// Failed and the run moves on to the next file.
func (exec Executor) Run(statuses []FileStatus) Report {
	var report Report
	for _, fileStatus := range statuses {
		switch fileStatus.Status {
		case StatusSame:
			report.Unchanged++
		case StatusMissing:
			report.Missing = append(report.Missing, fileStatus.Path)
		case StatusDiffers:
			remotePath := path.Join(exec.RemoteDir, fileStatus.Path)
			if exec.DryRun {
				fmt.Fprintf(exec.Out, "Would copy %s to %s\n",
					fileStatus.Path, remotePath)
				report.Synced++
				continue
			}

			if err := exec.syncFile(fileStatus.Path, remotePath); err != nil {
				log.WithError(err).WithField("file", fileStatus.Path).
					Error("Failed to sync file")
				report.Failed = append(report.Failed, fileStatus.Path)
				continue
			}
			report.Synced++
		}
	}
	return report
}

func (exec Executor) syncFile(file, remotePath string) error {
	// mkdir -p is idempotent, so this is safe whether or not the directory
	// already exists on the pod.
	mkdir := "mkdir -p " + remote.Quote(path.Dir(remotePath))
	if _, err := exec.Runner.Run(mkdir); err != nil {
		return errors.WithContext(err, "create remote directory")
	}

	localPath := filepath.Join(exec.LocalDir, file)
	if err := exec.Copier.Copy(localPath, remotePath); err != nil {
		return errors.WithContext(err, "copy")
	}
	return nil
}
