package util

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/podsync-io/podsync/pkg/config"
	"github.com/podsync-io/podsync/pkg/errors"
	"github.com/podsync-io/podsync/pkg/pod"
	"github.com/podsync-io/podsync/pkg/remote"
)

// Shared validation errors for commands that need a fully-configured project.
var (
	ErrNoPod = errors.NewFriendlyError(
		"No pod is configured for this project.\n" +
			"Set one with `podsync config set-pod POD_ID`.")

	ErrNoTrackedFiles = errors.NewFriendlyError(
		"No files are tracked in this project.\n" +
			"Track one with `podsync add PATH`.")
)

// Mocked for unit testing.
var (
	parseUserConfig     = config.ParseUser
	getWorkingDirectory = os.Getwd
	discoverConnection  = pod.DiscoverConnection
	waitForSSH          = pod.WaitForSSH
	dialSSH             = remote.Dial
	newPodClient        = func(endpoint, apiKey string) pod.Client {
		return pod.NewAPIClient(endpoint, apiKey)
	}
)

// HandleFatalError prints the user-facing message for `err` and exits.
func HandleFatalError(err error) {
	log.WithError(err).Debug("Fatal error")
	fmt.Fprintln(os.Stderr, errors.GetPrintableMessage(err))
	os.Exit(1)
}

// HandlePanic converts a panic into a bug-report request rather than a bare
// stack trace. It should be deferred at the top of main.
func HandlePanic() {
	if r := recover(); r != nil {
		fmt.Fprintf(os.Stderr,
			"podsync hit an internal error: %v\n\n%s\n"+
				"This is a bug. Please report it at "+
				"https://github.com/podsync-io/podsync/issues.\n",
			r, debug.Stack())
		os.Exit(1)
	}
}

// GetProject loads the project config from the working directory, and
// returns the directory it was loaded from.
func GetProject() (config.Project, string, error) {
	dir, err := getWorkingDirectory()
	if err != nil {
		return config.Project{}, "", errors.WithContext(err, "get working directory")
	}

	project, err := config.LoadProject(dir)
	if err != nil {
		return config.Project{}, "", errors.WithContext(err, "load project config")
	}
	return project, dir, nil
}

// ValidateSyncable checks the cheap local preconditions for remote commands.
// It runs before any network call so that configuration mistakes fail fast.
func ValidateSyncable(project config.Project) error {
	if project.PodID == "" {
		return ErrNoPod
	}
	if len(project.Files) == 0 {
		return ErrNoTrackedFiles
	}
	return nil
}

// Dial resolves the project's pod to an SSH endpoint and connects to it.
// When `wait` is non-zero, it polls the provider for up to that long if the
// pod hasn't exposed SSH yet.
func Dial(project config.Project, wait time.Duration) (*remote.Client, error) {
	userConfig, err := parseUserConfig()
	if err != nil {
		return nil, errors.WithContext(err, "parse user config")
	}

	apiClient := newPodClient(userConfig.APIEndpoint, userConfig.APIKey)

	var conn pod.Connection
	if wait > 0 {
		conn, err = waitForSSH(clockwork.NewRealClock(), apiClient,
			project.PodID, project.IdentityFile, wait)
	} else {
		conn, err = discoverConnection(apiClient, project.PodID, project.IdentityFile)
	}
	if err != nil {
		if notReady, ok := errors.RootCause(err).(pod.SSHNotReadyError); ok {
			return nil, errors.NewFriendlyError(
				"The pod %q doesn't expose SSH yet.\n"+
					"It's probably still starting. Try again in a minute, or "+
					"run `podsync sync --wait` to poll until it's ready.",
				notReady.PodID)
		}
		return nil, errors.WithContext(err, "discover pod")
	}

	log.WithField("endpoint", conn.String()).Debug("Connecting to pod")
	client, err := dialSSH(conn)
	if err != nil {
		return nil, errors.WithContext(err, "connect to pod")
	}
	return client, nil
}
