package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/podsync-io/podsync/cmd/add"
	configCmd "github.com/podsync-io/podsync/cmd/config"
	"github.com/podsync-io/podsync/cmd/digest"
	"github.com/podsync-io/podsync/cmd/list"
	"github.com/podsync-io/podsync/cmd/remove"
	"github.com/podsync-io/podsync/cmd/ssh"
	"github.com/podsync-io/podsync/cmd/status"
	syncCmd "github.com/podsync-io/podsync/cmd/sync"
	"github.com/podsync-io/podsync/cmd/util"
	"github.com/podsync-io/podsync/cmd/version"
)

// verboseLogKey is the environment variable used to enable verbose logging.
// When it's set to `true`, Debug events are logged, rather than just Info
// and above.
const verboseLogKey = "PODSYNC_LOG_VERBOSE"

// Execute runs the main CLI process.
func Execute() {
	if os.Getenv(verboseLogKey) == "true" {
		log.SetLevel(log.DebugLevel)
	}

	rootCmd := &cobra.Command{
		Use:          "podsync",
		Short:        "Mirror local files onto a pod over SSH",
		SilenceUsage: true,

		// The call to rootCmd.Execute prints the error, so we silence errors
		// here to avoid double printing.
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		add.New(),
		configCmd.New(),
		digest.New(),
		list.New(),
		remove.New(),
		ssh.New(),
		status.New(),
		syncCmd.New(),
		version.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		util.HandleFatalError(err)
	}
}
