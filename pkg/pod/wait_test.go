package pod

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

// flakyClient returns a pod without an SSH forwarding until `readyAfter`
// calls have been made.
type flakyClient struct {
	calls      int
	readyAfter int
}

func (client *flakyClient) GetPod(id string) (Pod, error) {
	client.calls++
	pod := Pod{ID: id}
	if client.calls > client.readyAfter {
		pod.Ports = []PortMapping{
			{IP: "1.2.3.4", PublicPort: 31234, PrivatePort: 22, IsPublic: true, Type: "tcp"},
		}
	}
	return pod, nil
}

func TestWaitForSSHImmediatelyReady(t *testing.T) {
	clock := clockwork.NewFakeClock()
	client := &flakyClient{readyAfter: 0}

	conn, err := WaitForSSH(clock, client, "pod-1", "~/.ssh/key", time.Minute)
	assert.NoError(t, err)
	assert.Equal(t, "1.2.3.4", conn.Host)
	assert.Equal(t, 1, client.calls)
}

func TestWaitForSSHEventuallyReady(t *testing.T) {
	clock := clockwork.NewFakeClock()
	client := &flakyClient{readyAfter: 1}

	done := make(chan struct{})
	var conn Connection
	var err error
	go func() {
		defer close(done)
		conn, err = WaitForSSH(clock, client, "pod-1", "~/.ssh/key", time.Minute)
	}()

	// Let the first discovery fail, then advance past the poll interval.
	clock.BlockUntil(1)
	clock.Advance(sshPollInterval)
	<-done

	assert.NoError(t, err)
	assert.Equal(t, 31234, conn.Port)
	assert.Equal(t, 2, client.calls)
}

func TestWaitForSSHTimeout(t *testing.T) {
	clock := clockwork.NewFakeClock()
	client := &flakyClient{readyAfter: 100}

	// The timeout is shorter than a single poll interval, so the wait gives
	// up without sleeping.
	_, err := WaitForSSH(clock, client, "pod-1", "~/.ssh/key", time.Second)
	assert.Error(t, err)
	assert.Equal(t, 1, client.calls)
}

func TestWaitForSSHUnknownPodAbortsImmediately(t *testing.T) {
	clock := clockwork.NewFakeClock()
	client := fakeClient{}

	_, err := WaitForSSH(clock, client, "no-such-pod", "~/.ssh/key", time.Minute)
	assert.Error(t, err)
}
