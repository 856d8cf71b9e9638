package pod

import (
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/podsync-io/podsync/pkg/errors"
)

// sshPollInterval is how often WaitForSSH re-queries the provider while the
// pod's SSH forwarding isn't up yet.
const sshPollInterval = 5 * time.Second

// WaitForSSH polls the provider until the pod exposes its SSH endpoint, or
// until `timeout` elapses. Unknown-pod and API errors abort immediately --
// waiting only makes sense for the not-ready case.
func WaitForSSH(clock clockwork.Clock, client Client, podID, identityFile string,
	timeout time.Duration) (Connection, error) {

	deadline := clock.Now().Add(timeout)
	for {
		conn, err := DiscoverConnection(client, podID, identityFile)
		if err == nil {
			return conn, nil
		}

		if _, notReady := errors.RootCause(err).(SSHNotReadyError); !notReady {
			return Connection{}, err
		}

		if !clock.Now().Add(sshPollInterval).Before(deadline) {
			return Connection{}, errors.NewFriendlyError(
				"Timed out waiting for pod %q to expose SSH.\n"+
					"The pod may still be starting. Try again in a minute, or "+
					"check the pod's status in the provider console.", podID)
		}

		log.WithField("pod", podID).Debug("SSH not ready yet, polling")
		clock.Sleep(sshPollInterval)
	}
}
