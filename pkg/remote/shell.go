package remote

import (
	"io"

	"golang.org/x/crypto/ssh"

	"github.com/podsync-io/podsync/pkg/errors"
)

// Shell opens an interactive login shell on the pod, wired to the given
// streams. The caller is responsible for putting the local terminal into raw
// mode. `width` and `height` size the remote pty.
func (client *Client) Shell(stdin io.Reader, stdout, stderr io.Writer,
	width, height int) error {

	session, err := client.sshClient.NewSession()
	if err != nil {
		return errors.WithContext(err, "create session")
	}
	defer session.Close()

	modes := ssh.TerminalModes{
		ssh.ECHO:          1,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := session.RequestPty("xterm-256color", height, width, modes); err != nil {
		return errors.WithContext(err, "request pty")
	}

	session.Stdin = stdin
	session.Stdout = stdout
	session.Stderr = stderr
	if err := session.Shell(); err != nil {
		return errors.WithContext(err, "start shell")
	}
	return session.Wait()
}
