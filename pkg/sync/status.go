package sync

import (
	"path/filepath"
)

// Status classifies a tracked file relative to its copy on the pod.
type Status int

const (
	// StatusMissing means the file doesn't exist on the local machine. It's
	// reported so the user can untrack it, but there's nothing to transfer.
	StatusMissing Status = iota

	// StatusDiffers means the file needs to be copied to the pod: the
	// contents differ, the pod doesn't have the file, or one of the digests
	// couldn't be obtained.
	StatusDiffers

	// StatusSame means both digests were obtained and are equal.
	StatusSame
)

func (s Status) String() string {
	switch s {
	case StatusMissing:
		return "missing"
	case StatusDiffers:
		return "differs"
	case StatusSame:
		return "same"
	}
	return "unknown"
}

// FileStatus pairs a tracked file with its classification.
type FileStatus struct {
	Path   string
	Status Status
}

// ComputeStatuses classifies each tracked file in a single pass, in tracked
// order. `remoteDigests` is the result of ProbeRemote. A file is StatusSame
// only when both digests were obtained and are equal -- any ambiguity
// resolves to StatusDiffers.
func ComputeStatuses(localDir string, files []string,
	remoteDigests map[string]string) []FileStatus {

	statuses := make([]FileStatus, 0, len(files))
	for _, file := range files {
		digest, exists := localDigest(filepath.Join(localDir, file))

		var status Status
		remoteDigest, onRemote := remoteDigests[file]
		switch {
		case !exists:
			status = StatusMissing
		case digest == "" || !onRemote:
			status = StatusDiffers
		case digest == remoteDigest:
			status = StatusSame
		default:
			status = StatusDiffers
		}
		statuses = append(statuses, FileStatus{Path: file, Status: status})
	}
	return statuses
}
