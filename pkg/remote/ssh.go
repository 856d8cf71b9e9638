package remote

import (
	"net"
	"strconv"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"golang.org/x/crypto/ssh"

	"github.com/podsync-io/podsync/pkg/errors"
	"github.com/podsync-io/podsync/pkg/pod"
)

// Mocked out for unit testing.
var fs = afero.NewOsFs()

const dialTimeout = 15 * time.Second

// Client is an SSH connection to a pod. It implements Runner and Copier.
type Client struct {
	sshClient *ssh.Client
}

// Dial opens an SSH connection to the pod described by `conn`.
func Dial(conn pod.Connection) (*Client, error) {
	keyPath, err := homedir.Expand(conn.IdentityFile)
	if err != nil {
		return nil, errors.WithContext(err, "expand identity file path")
	}

	keyBytes, err := afero.ReadFile(fs, keyPath)
	if err != nil {
		return nil, errors.NewFriendlyError(
			"Couldn't read the SSH key at %q.\n"+
				"Set SSH_KEY in the project config to the key registered "+
				"with the pod provider.", keyPath)
	}

	signer, err := ssh.ParsePrivateKey(keyBytes)
	if err != nil {
		return nil, errors.WithContext(err, "parse private key")
	}

	sshConfig := &ssh.ClientConfig{
		User: conn.User,
		Auth: []ssh.AuthMethod{ssh.PublicKeys(signer)},

		// Pods are ephemeral, so there's no stable host key to pin against.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         dialTimeout,
	}

	addr := net.JoinHostPort(conn.Host, strconv.Itoa(conn.Port))
	sshClient, err := ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return nil, errors.WithContext(err, "dial")
	}
	return &Client{sshClient: sshClient}, nil
}

// Run executes `command` on the pod and returns its stdout.
func (client *Client) Run(command string) ([]byte, error) {
	session, err := client.sshClient.NewSession()
	if err != nil {
		return nil, errors.WithContext(err, "create session")
	}
	defer session.Close()

	output, err := session.Output(command)
	if err != nil {
		return nil, errors.WithContext(err, "run")
	}
	return output, nil
}

// Copy streams the local file at `localPath` into `remotePath` on the pod,
// overwriting it. The parent directory must already exist.
func (client *Client) Copy(localPath, remotePath string) error {
	local, err := fs.Open(localPath)
	if err != nil {
		return errors.WithContext(err, "open local file")
	}
	defer local.Close()

	session, err := client.sshClient.NewSession()
	if err != nil {
		return errors.WithContext(err, "create session")
	}
	defer session.Close()

	session.Stdin = local
	if err := session.Run("cat > " + Quote(remotePath)); err != nil {
		return errors.WithContext(err, "write remote file")
	}
	return nil
}

// Close tears down the SSH connection.
func (client *Client) Close() error {
	return client.sshClient.Close()
}
