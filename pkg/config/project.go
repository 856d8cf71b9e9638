package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/podsync-io/podsync/pkg/errors"
)

const (
	// ProjectConfigName is the name of the per-project config record. It
	// lives in the directory that `podsync` commands are run from.
	ProjectConfigName = ".podsync"

	// DefaultIdentityFile is the SSH key used when the project config
	// doesn't specify one.
	DefaultIdentityFile = "~/.ssh/id_ed25519"

	// DefaultRemoteDir is the remote directory that tracked files are
	// mirrored into by default.
	DefaultRemoteDir = "/workspace"

	// fileListSeparator joins the tracked file list into a single record
	// field. It's reserved: tracked paths must not contain it.
	fileListSeparator = ":"
)

// Project is the per-project configuration: which pod to sync to, and which
// files to sync. It's a plain value -- commands load it, transform it in
// memory, and write the whole record back. The tool assumes no concurrent
// invocations against the same project directory, so no locking is done.
type Project struct {
	// PodID identifies the pod in the provider API.
	PodID string

	// Files are the tracked files, as paths relative to the project
	// directory. The order is the display and sync order. No duplicates.
	Files []string

	// IdentityFile is the SSH private key used to reach the pod.
	IdentityFile string

	// RemoteDir is the directory on the pod that files are mirrored into.
	RemoteDir string
}

// Record field keys. The on-disk layout is one KEY=VALUE pair per line,
// order insensitive.
const (
	podIDKey     = "POD_ID"
	filesKey     = "SYNC_FILES"
	sshKeyKey    = "SSH_KEY"
	remoteDirKey = "REMOTE_DIR"
)

// LoadProject reads the project config in `dir`. A missing record is not an
// error -- it parses as the all-defaults Project.
func LoadProject(dir string) (Project, error) {
	project := Project{
		IdentityFile: DefaultIdentityFile,
		RemoteDir:    DefaultRemoteDir,
	}

	path := filepath.Join(dir, ProjectConfigName)
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return Project{}, errors.WithContext(err, "stat config")
	}
	if !exists {
		return project, nil
	}

	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		return Project{}, errors.WithContext(err, "read config")
	}

	for _, line := range strings.Split(string(contents), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return Project{}, errors.NewFriendlyError(
				"The config file %q is malformed.\n"+
					"Expected KEY=VALUE lines, but got %q.", path, line)
		}

		key, value := parts[0], parts[1]
		switch key {
		case podIDKey:
			project.PodID = value
		case filesKey:
			if value != "" {
				project.Files = strings.Split(value, fileListSeparator)
			}
		case sshKeyKey:
			if value != "" {
				project.IdentityFile = value
			}
		case remoteDirKey:
			if value != "" {
				project.RemoteDir = value
			}
		default:
			// Ignore unknown keys so that old binaries can read records
			// written by newer ones.
		}
	}
	return project, nil
}

// WriteProject rewrites the whole project record in `dir`. The write goes
// through a temporary file and a rename so that a crashed write never leaves
// a half-written record behind.
func WriteProject(dir string, project Project) error {
	var record strings.Builder
	fmt.Fprintf(&record, "%s=%s\n", podIDKey, project.PodID)
	fmt.Fprintf(&record, "%s=%s\n", filesKey,
		strings.Join(project.Files, fileListSeparator))
	fmt.Fprintf(&record, "%s=%s\n", sshKeyKey, project.IdentityFile)
	fmt.Fprintf(&record, "%s=%s\n", remoteDirKey, project.RemoteDir)

	path := filepath.Join(dir, ProjectConfigName)
	tmpPath := path + ".tmp"
	if err := afero.WriteFile(fs, tmpPath, []byte(record.String()), 0644); err != nil {
		return errors.WithContext(err, "write")
	}
	if err := fs.Rename(tmpPath, path); err != nil {
		return errors.WithContext(err, "rename")
	}
	return nil
}

// Tracked returns whether `path` is in the tracked set.
func (project Project) Tracked(path string) bool {
	for _, f := range project.Files {
		if f == path {
			return true
		}
	}
	return false
}

// ValidateTrackedPath checks that `path` can be tracked. Paths must be
// relative, must stay within the project directory, and must not contain the
// reserved separator used by the persisted record.
func ValidateTrackedPath(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	if strings.Contains(path, fileListSeparator) {
		return errors.NewFriendlyError(
			"Can't track %q: paths containing %q are not supported.",
			path, fileListSeparator)
	}
	if filepath.IsAbs(path) {
		return errors.NewFriendlyError(
			"Can't track %q: paths must be relative to the project directory.",
			path)
	}
	if strings.HasPrefix(filepath.Clean(path), "..") {
		return errors.NewFriendlyError(
			"Can't track %q: paths must stay within the project directory.",
			path)
	}
	return nil
}

// AddResult describes what AddFiles did with each requested path.
type AddResult struct {
	// Added are the paths that are newly tracked.
	Added []string

	// AlreadyTracked are the paths that were requested but already in the
	// tracked set. Adding them again is a no-op.
	AlreadyTracked []string
}

// AddFiles returns a copy of `project` with `paths` appended to the tracked
// set. Duplicates within the existing set and within `paths` itself are
// skipped and reported. The order of pre-existing files is unchanged. The
// caller is responsible for persisting the result.
func AddFiles(project Project, paths []string) (Project, AddResult, error) {
	updated := project
	updated.Files = append([]string{}, project.Files...)

	var result AddResult
	for _, path := range paths {
		path = filepath.Clean(path)
		if err := ValidateTrackedPath(path); err != nil {
			return Project{}, AddResult{}, err
		}

		if updated.Tracked(path) {
			result.AlreadyTracked = append(result.AlreadyTracked, path)
			continue
		}
		updated.Files = append(updated.Files, path)
		result.Added = append(result.Added, path)
	}
	return updated, result, nil
}

// RemoveResult describes what RemoveFiles did.
type RemoveResult struct {
	// Removed are the explicitly requested paths that were removed.
	Removed []string

	// NotTracked are the explicitly requested paths that weren't in the
	// tracked set.
	NotTracked []string

	// PrunedMissing are tracked files that were removed because they no
	// longer exist locally. Only populated when pruning was requested.
	PrunedMissing []string
}

// RemoveFiles returns a copy of `project` with `paths` removed from the
// tracked set. When `pruneMissing` is set, tracked files that don't exist
// under `localDir` are removed as well, and reported separately from the
// explicit removals. The caller is responsible for persisting the result.
func RemoveFiles(project Project, paths []string, pruneMissing bool,
	localDir string) (Project, RemoveResult, error) {

	requested := map[string]bool{}
	for _, path := range paths {
		requested[filepath.Clean(path)] = true
	}

	var result RemoveResult
	updated := project
	updated.Files = nil
	for _, tracked := range project.Files {
		if requested[tracked] {
			result.Removed = append(result.Removed, tracked)
			delete(requested, tracked)
			continue
		}

		if pruneMissing {
			exists, err := afero.Exists(fs, filepath.Join(localDir, tracked))
			if err != nil {
				return Project{}, RemoveResult{}, errors.WithContext(err, "stat")
			}
			if !exists {
				result.PrunedMissing = append(result.PrunedMissing, tracked)
				continue
			}
		}
		updated.Files = append(updated.Files, tracked)
	}

	for path := range requested {
		result.NotTracked = append(result.NotTracked, path)
	}
	sort.Strings(result.NotTracked)
	return updated, result, nil
}
