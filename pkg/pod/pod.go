package pod

import (
	"fmt"

	"github.com/podsync-io/podsync/pkg/errors"
)

// SSHUser is the user that pods accept SSH connections for. The provider
// images all run sshd as root, so it isn't configurable.
const SSHUser = "root"

// sshPrivatePort is the port sshd listens on inside the pod. The provider
// forwards it to a public host/port pair when SSH is enabled.
const sshPrivatePort = 22

// Pod is the provider API's view of a pod.
type Pod struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Status string        `json:"desiredStatus"`
	Ports  []PortMapping `json:"ports"`
}

// PortMapping is a single public TCP forwarding into the pod.
type PortMapping struct {
	IP          string `json:"ip"`
	PublicPort  int    `json:"publicPort"`
	PrivatePort int    `json:"privatePort"`
	IsPublic    bool   `json:"isIpPublic"`
	Type        string `json:"type"`
}

// Connection describes how to reach a pod over SSH. It's derived from the
// provider API per command invocation and never persisted.
type Connection struct {
	Host         string
	Port         int
	User         string
	IdentityFile string
}

func (conn Connection) String() string {
	return fmt.Sprintf("%s@%s:%d", conn.User, conn.Host, conn.Port)
}

// Client queries the pod provider API.
type Client interface {
	// GetPod returns the pod with the given ID. It returns a NotFoundError
	// if the provider doesn't know the ID.
	GetPod(id string) (Pod, error)
}

// NotFoundError represents a pod ID that the provider doesn't know about.
type NotFoundError struct {
	PodID string
}

func (err NotFoundError) Error() string {
	return fmt.Sprintf("no pod with ID %q", err.PodID)
}

// SSHNotReadyError represents a pod that exists, but doesn't expose a public
// SSH forwarding yet. This is normal right after a pod boots.
type SSHNotReadyError struct {
	PodID string
}

func (err SSHNotReadyError) Error() string {
	return fmt.Sprintf("pod %q does not expose SSH yet", err.PodID)
}

// DiscoverConnection resolves the SSH endpoint for the given pod by looking
// for the public TCP forwarding that targets the pod's SSH port. The two
// failure modes get different user-facing messages: an unknown pod is a
// configuration problem, while a missing forwarding usually just means the
// pod is still starting.
func DiscoverConnection(client Client, podID, identityFile string) (Connection, error) {
	pod, err := client.GetPod(podID)
	if err != nil {
		if _, ok := errors.RootCause(err).(NotFoundError); ok {
			return Connection{}, errors.NewFriendlyError(
				"The pod %q is unknown or unreachable.\n"+
					"Check the pod ID with `podsync config get-pod`, and make "+
					"sure the pod hasn't been terminated.", podID)
		}
		return Connection{}, errors.WithContext(err, "get pod")
	}

	for _, mapping := range pod.Ports {
		if mapping.Type != "" && mapping.Type != "tcp" {
			continue
		}
		if !mapping.IsPublic || mapping.PrivatePort != sshPrivatePort {
			continue
		}

		return Connection{
			Host:         mapping.IP,
			Port:         mapping.PublicPort,
			User:         SSHUser,
			IdentityFile: identityFile,
		}, nil
	}
	return Connection{}, SSHNotReadyError{PodID: podID}
}
