package version

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	goversion "github.com/hashicorp/go-version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/podsync-io/podsync/pkg/errors"
	"github.com/podsync-io/podsync/pkg/version"
)

// Mocked for unit testing.
var (
	stdout   io.Writer = os.Stdout
	endpoint           = "https://releases.podsync.io/latest"
)

// New creates a new `version` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the podsync version and check for updates",
		Run: func(_ *cobra.Command, _ []string) {
			run()
		},
	}
}

func run() {
	fmt.Fprintf(stdout, "podsync version: %s\n", version.Version)

	// The update check is best effort. The local version was already
	// printed, so a release-endpoint outage shouldn't fail the command.
	latest, err := getLatestVersion()
	if err != nil {
		log.WithError(err).Debug("Failed to check for updates")
		return
	}

	if version.Version == version.EmptyValue {
		return
	}

	current, err := goversion.NewVersion(version.Version)
	if err != nil {
		log.WithError(err).Debug("Failed to parse local version")
		return
	}

	if current.LessThan(latest) {
		fmt.Fprintf(stdout, "A newer release (%s) is available.\n", latest)
	}
}

func getLatestVersion() (*goversion.Version, error) {
	client := http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(endpoint)
	if err != nil {
		return nil, errors.WithContext(err, "query releases")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var release struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, errors.WithContext(err, "parse response")
	}

	latest, err := goversion.NewVersion(release.Version)
	if err != nil {
		return nil, errors.WithContext(err, "parse version")
	}
	return latest, nil
}
