package sync

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestHashFile(t *testing.T) {
	fs = afero.NewMemMapFs()
	writeFile(t, "/project/hello.txt", "hello\n")

	digest, err := HashFile("/project/hello.txt")
	assert.NoError(t, err)

	// sha256 of "hello\n", as sha256sum would print it on the pod.
	assert.Equal(t,
		"5891b5b522d5df086d0ff0b110fbd9d21bb4fc7163af34d08286a2e846f6be03",
		digest)

	_, err = HashFile("/project/nope.txt")
	assert.Error(t, err)
}

func TestLocalDigest(t *testing.T) {
	fs = afero.NewMemMapFs()
	writeFile(t, "/project/a.txt", "a")

	digest, exists := localDigest("/project/a.txt")
	assert.True(t, exists)
	assert.NotEmpty(t, digest)

	digest, exists = localDigest("/project/absent.txt")
	assert.False(t, exists)
	assert.Empty(t, digest)
}

func TestRemoteDigest(t *testing.T) {
	runner := &fakeRunner{output: []byte("abc123  /workspace/a.txt\n")}
	digest, err := RemoteDigest(runner, "/workspace/a.txt")
	assert.NoError(t, err)
	assert.Equal(t, "abc123", digest)
	assert.Equal(t, []string{"sha256sum '/workspace/a.txt'"}, runner.commands)

	runner = &fakeRunner{err: assert.AnError}
	_, err = RemoteDigest(runner, "/workspace/a.txt")
	assert.Error(t, err)
}
