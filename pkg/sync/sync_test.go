package sync

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

// fakeCopier records copies, and fails the paths in `failPaths`.
type fakeCopier struct {
	copies    [][2]string
	failPaths map[string]bool
}

func (copier *fakeCopier) Copy(localPath, remotePath string) error {
	if copier.failPaths[localPath] {
		return assert.AnError
	}
	copier.copies = append(copier.copies, [2]string{localPath, remotePath})
	return nil
}

func TestExecutorRun(t *testing.T) {
	runner := &fakeRunner{}
	copier := &fakeCopier{}
	executor := Executor{
		Runner:    runner,
		Copier:    copier,
		LocalDir:  "/project",
		RemoteDir: "/workspace",
	}

	report := executor.Run([]FileStatus{
		{Path: "same.txt", Status: StatusSame},
		{Path: "changed.txt", Status: StatusDiffers},
		{Path: "nested/new.txt", Status: StatusDiffers},
		{Path: "gone.txt", Status: StatusMissing},
	})

	assert.Equal(t, 2, report.Synced)
	assert.Equal(t, 1, report.Unchanged)
	assert.Equal(t, []string{"gone.txt"}, report.Missing)
	assert.Empty(t, report.Failed)

	// Each transfer creates the parent directory first.
	assert.Equal(t, []string{
		"mkdir -p '/workspace'",
		"mkdir -p '/workspace/nested'",
	}, runner.commands)
	assert.Equal(t, [][2]string{
		{"/project/changed.txt", "/workspace/changed.txt"},
		{"/project/nested/new.txt", "/workspace/nested/new.txt"},
	}, copier.copies)
}

func TestExecutorFailureDoesNotAbortBatch(t *testing.T) {
	runner := &fakeRunner{}
	copier := &fakeCopier{failPaths: map[string]bool{"/project/bad.txt": true}}
	executor := Executor{
		Runner:    runner,
		Copier:    copier,
		LocalDir:  "/project",
		RemoteDir: "/workspace",
	}

	report := executor.Run([]FileStatus{
		{Path: "bad.txt", Status: StatusDiffers},
		{Path: "good.txt", Status: StatusDiffers},
	})

	// The failure is recorded, and the next file still gets copied.
	assert.Equal(t, []string{"bad.txt"}, report.Failed)
	assert.Equal(t, 1, report.Synced)
	assert.Equal(t, [][2]string{
		{"/project/good.txt", "/workspace/good.txt"},
	}, copier.copies)
}

func TestExecutorDryRun(t *testing.T) {
	runner := &fakeRunner{}
	copier := &fakeCopier{}
	var out bytes.Buffer
	executor := Executor{
		Runner:    runner,
		Copier:    copier,
		LocalDir:  "/project",
		RemoteDir: "/workspace",
		DryRun:    true,
		Out:       &out,
	}

	report := executor.Run([]FileStatus{
		{Path: "changed.txt", Status: StatusDiffers},
		{Path: "same.txt", Status: StatusSame},
	})

	assert.Equal(t, 1, report.Synced)
	assert.Equal(t, 1, report.Unchanged)
	assert.Equal(t, "Would copy changed.txt to /workspace/changed.txt\n", out.String())

	// A dry run must never touch the remote side.
	assert.Empty(t, runner.commands)
	assert.Empty(t, copier.copies)
}

// Syncing twice with no local changes in between transfers nothing the
// second time: the first run's copies make the digests equal.
func TestSyncIdempotence(t *testing.T) {
	fs = afero.NewMemMapFs()
	writeFile(t, "/project/a.txt", "contents a")
	writeFile(t, "/project/b.txt", "contents b")
	tracked := []string{"a.txt", "b.txt"}

	digestA, err := HashFile("/project/a.txt")
	assert.NoError(t, err)
	digestB, err := HashFile("/project/b.txt")
	assert.NoError(t, err)

	// First run: the pod only has a stale copy of a.txt.
	firstRemote := map[string]string{"a.txt": "stale-digest"}
	copier := &fakeCopier{}
	executor := Executor{
		Runner:    &fakeRunner{},
		Copier:    copier,
		LocalDir:  "/project",
		RemoteDir: "/workspace",
	}
	report := executor.Run(ComputeStatuses("/project", tracked, firstRemote))
	assert.Equal(t, 2, report.Synced)

	// Second run: the probe now reflects the copies from the first run.
	secondRemote := map[string]string{"a.txt": digestA, "b.txt": digestB}
	report = executor.Run(ComputeStatuses("/project", tracked, secondRemote))
	assert.Equal(t, 0, report.Synced)
	assert.Equal(t, 2, report.Unchanged)
	assert.Empty(t, report.Failed)
}
