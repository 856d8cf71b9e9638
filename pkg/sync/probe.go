package sync

import (
	"fmt"
	"path"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/podsync-io/podsync/pkg/remote"
)

// ProbeRemote returns the content digest of each tracked file on the pod,
// keyed by the file's tracked (relative) path. It issues exactly one remote
// execution for any number of files, and none for an empty list -- remote
// round trips dominate the cost of a sync, so per-file probing is never
// acceptable in the hot path.
//
// Files without a digest in the result don't exist on the pod. If the probe
// itself fails (e.g. the connection dropped), the result is empty, which
// downgrades every file to "needs syncing". The bias is deliberate: an
// unnecessary re-upload is recoverable, a silently skipped one is not.
func ProbeRemote(runner remote.Runner, remoteDir string, files []string) map[string]string {
	digests := map[string]string{}
	if len(files) == 0 {
		return digests
	}

	output, err := runner.Run(probeScript(remoteDir, files))
	if err != nil {
		log.WithError(err).Warn("Remote probe failed. " +
			"Every tracked file will be treated as changed.")
		return digests
	}

	for _, line := range strings.Split(string(output), "\n") {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		digests[parts[0]] = parts[1]
	}
	return digests
}

// probeScript generates the shell script that emits "<path>:<digest>" for
// each file that exists on the pod. Paths are quoted before interpolation --
// tracked paths are user input. The path itself is safe as a key because the
// config layer rejects tracked paths containing ":".
func probeScript(remoteDir string, files []string) string {
	var script strings.Builder
	for _, file := range files {
		quotedPath := remote.Quote(path.Join(remoteDir, file))
		fmt.Fprintf(&script,
			"if [ -f %[2]s ]; then printf '%%s:%%s\\n' %[1]s \"$(sha256sum %[2]s | cut -d' ' -f1)\"; fi\n",
			remote.Quote(file), quotedPath)
	}
	return script.String()
}
