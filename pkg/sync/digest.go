package sync

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/podsync-io/podsync/pkg/errors"
	"github.com/podsync-io/podsync/pkg/remote"
)

// Mocked out for unit testing.
var fs = afero.NewOsFs()

// HashFile returns the hex-encoded sha256 hash of the file at the given
// path. sha256 is used (rather than something faster) so that the remote
// side can compute the identical digest with coreutils' sha256sum.
func HashFile(path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", errors.WithContext(err, "open")
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", errors.WithContext(err, "read")
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// localDigest returns the content digest of a local file. `exists` is false
// when the file doesn't exist. An unreadable file reports exists=true with
// an empty digest, which the diff treats as changed rather than as an error.
func localDigest(path string) (digest string, exists bool) {
	ok, err := afero.Exists(fs, path)
	if err != nil || !ok {
		return "", false
	}

	digest, err = HashFile(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Debug("Failed to hash local file")
		return "", true
	}
	return digest, true
}

// RemoteDigest computes the digest of a single remote file. The sync path
// never calls this (it probes all files in one execution); it backs the
// auxiliary `podsync digest` command.
func RemoteDigest(runner remote.Runner, remotePath string) (string, error) {
	output, err := runner.Run("sha256sum " + remote.Quote(remotePath))
	if err != nil {
		return "", errors.WithContext(err, "run sha256sum")
	}

	// sha256sum prints "<digest>  <path>".
	fields := strings.Fields(string(output))
	if len(fields) < 1 {
		return "", errors.New("unexpected sha256sum output")
	}
	return fields[0], nil
}
