package pod

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/podsync-io/podsync/pkg/errors"
)

// fakeClient serves pods from a map.
type fakeClient struct {
	pods map[string]Pod
}

func (client fakeClient) GetPod(id string) (Pod, error) {
	pod, ok := client.pods[id]
	if !ok {
		return Pod{}, NotFoundError{PodID: id}
	}
	return pod, nil
}

func TestDiscoverConnection(t *testing.T) {
	tests := []struct {
		name    string
		pod     Pod
		exp     Connection
		expErr  bool
		expType interface{}
	}{
		{
			name: "SSHExposed",
			pod: Pod{
				ID: "pod-1",
				Ports: []PortMapping{
					{IP: "1.2.3.4", PublicPort: 8888, PrivatePort: 8888, IsPublic: true, Type: "http"},
					{IP: "1.2.3.4", PublicPort: 31234, PrivatePort: 22, IsPublic: true, Type: "tcp"},
				},
			},
			exp: Connection{
				Host:         "1.2.3.4",
				Port:         31234,
				User:         SSHUser,
				IdentityFile: "~/.ssh/id_ed25519",
			},
		},
		{
			name: "NoSSHForwarding",
			pod: Pod{
				ID: "pod-1",
				Ports: []PortMapping{
					{IP: "1.2.3.4", PublicPort: 8888, PrivatePort: 8888, IsPublic: true, Type: "tcp"},
				},
			},
			expErr:  true,
			expType: SSHNotReadyError{},
		},
		{
			name: "PrivateForwardingIgnored",
			pod: Pod{
				ID: "pod-1",
				Ports: []PortMapping{
					{IP: "10.0.0.5", PublicPort: 22, PrivatePort: 22, IsPublic: false, Type: "tcp"},
				},
			},
			expErr:  true,
			expType: SSHNotReadyError{},
		},
		{
			name:    "NoPorts",
			pod:     Pod{ID: "pod-1"},
			expErr:  true,
			expType: SSHNotReadyError{},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			client := fakeClient{pods: map[string]Pod{"pod-1": test.pod}}
			conn, err := DiscoverConnection(client, "pod-1", "~/.ssh/id_ed25519")
			if test.expErr {
				assert.Error(t, err)
				assert.IsType(t, test.expType, errors.RootCause(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.exp, conn)
		})
	}
}

// An unknown pod gets a different, friendly message: it's a config mistake,
// not a pod that's still booting.
func TestDiscoverConnectionUnknownPod(t *testing.T) {
	client := fakeClient{}
	_, err := DiscoverConnection(client, "no-such-pod", "")
	assert.Error(t, err)
	assert.IsType(t, errors.FriendlyError{}, errors.RootCause(err))
}
