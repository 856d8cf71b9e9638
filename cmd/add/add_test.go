package add

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/podsync-io/podsync/pkg/config"
)

func TestAdd(t *testing.T) {
	fs = afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, "/project/b.txt", []byte("b"), 0644))

	getProject = func() (config.Project, string, error) {
		return config.Project{Files: []string{"a.txt"}}, "/project", nil
	}

	var written config.Project
	writeProject = func(dir string, project config.Project) error {
		assert.Equal(t, "/project", dir)
		written = project
		return nil
	}

	var out bytes.Buffer
	stdout = &out

	assert.NoError(t, run([]string{"b.txt", "a.txt"}))

	// a.txt is already tracked: reported, not duplicated, order unchanged.
	assert.Equal(t, []string{"a.txt", "b.txt"}, written.Files)
	assert.Equal(t, "Tracking b.txt\na.txt is already tracked\n", out.String())
}

func TestAddRejectsReservedSeparator(t *testing.T) {
	fs = afero.NewMemMapFs()
	getProject = func() (config.Project, string, error) {
		return config.Project{}, "/project", nil
	}

	wrote := false
	writeProject = func(string, config.Project) error {
		wrote = true
		return nil
	}

	var out bytes.Buffer
	stdout = &out

	assert.Error(t, run([]string{"bad:path.txt"}))
	assert.False(t, wrote)
}
