// Package remote provides command execution and file transfer on a pod over
// SSH. The sync engine only sees the two small interfaces defined here, so
// tests can swap in recorders.
package remote

// A Runner executes a command on the remote host and returns its stdout.
// A non-zero exit status is returned as an error.
type Runner interface {
	Run(command string) ([]byte, error)
}

// A Copier transfers a local file to an absolute path on the remote host,
// overwriting any existing file.
type Copier interface {
	Copy(localPath, remotePath string) error
}
