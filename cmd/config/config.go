package config

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/podsync-io/podsync/cmd/util"
	"github.com/podsync-io/podsync/pkg/config"
	"github.com/podsync-io/podsync/pkg/errors"
)

// Mocked for unit testing.
var (
	stdout          io.Writer = os.Stdout
	parseUserConfig           = config.ParseUser
	writeUserConfig           = config.WriteUser
	writeProject              = config.WriteProject
	getProject                = util.GetProject
)

// New creates a new `config` command.
func New() *cobra.Command {
	var cliOpts config.User
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configure the pod provider credentials and the project's pod",
		Run: func(_ *cobra.Command, _ []string) {
			if err := setupUser(cliOpts); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVar(&cliOpts.APIKey, "api-key", "",
		"The pod provider API key.")
	cmd.Flags().StringVar(&cliOpts.APIEndpoint, "endpoint", "",
		"The pod provider API endpoint. "+
			"Optional: defaults to "+config.DefaultAPIEndpoint+".")

	cmd.AddCommand(&cobra.Command{
		Use:   "set-pod POD_ID",
		Short: "Set the pod this project syncs to",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := setProjectField(func(p *config.Project) {
				p.PodID = args[0]
			}); err != nil {
				util.HandleFatalError(err)
			}
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set-remote-dir DIR",
		Short: "Set the remote directory files are mirrored into",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := setProjectField(func(p *config.Project) {
				p.RemoteDir = args[0]
			}); err != nil {
				util.HandleFatalError(err)
			}
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set-ssh-key PATH",
		Short: "Set the SSH private key used to reach the pod",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := setProjectField(func(p *config.Project) {
				p.IdentityFile = args[0]
			}); err != nil {
				util.HandleFatalError(err)
			}
		},
	})

	// Setup the commands for querying the contents of the project config.
	type getterSpec struct {
		use, short string
		fn         func(config.Project) string
	}

	getters := []getterSpec{
		{
			use:   "get-pod",
			short: "Get the pod this project syncs to",
			fn:    func(p config.Project) string { return p.PodID },
		},
		{
			use:   "get-remote-dir",
			short: "Get the remote directory files are mirrored into",
			fn:    func(p config.Project) string { return p.RemoteDir },
		},
		{
			use:   "get-ssh-key",
			short: "Get the SSH private key used to reach the pod",
			fn:    func(p config.Project) string { return p.IdentityFile },
		},
	}
	for _, getter := range getters {
		getter := getter
		cmd.AddCommand(&cobra.Command{
			Use:   getter.use,
			Short: getter.short,
			Run: func(_ *cobra.Command, _ []string) {
				project, _, err := getProject()
				if err != nil {
					util.HandleFatalError(errors.WithContext(err, "read config"))
				}

				fmt.Fprintln(stdout, getter.fn(project))
			},
		})
	}

	return cmd
}

func setupUser(cliOpts config.User) error {
	if cliOpts.APIKey == "" && cliOpts.APIEndpoint == "" {
		current, err := parseUserConfig()
		if err != nil {
			return errors.NewFriendlyError(
				"No user config exists yet.\n" +
					"Create one with `podsync config --api-key KEY`.")
		}
		fmt.Fprintf(stdout, "api key:  %s\n", mask(current.APIKey))
		fmt.Fprintf(stdout, "endpoint: %s\n", current.APIEndpoint)
		return nil
	}

	// Start from the existing config so that setting one field doesn't wipe
	// the other.
	cfg, err := parseUserConfig()
	if err != nil {
		cfg = config.User{}
	}
	if cliOpts.APIKey != "" {
		cfg.APIKey = cliOpts.APIKey
	}
	if cliOpts.APIEndpoint != "" {
		cfg.APIEndpoint = cliOpts.APIEndpoint
	}

	if err := writeUserConfig(cfg); err != nil {
		return errors.WithContext(err, "write config")
	}

	path, err := config.GetUserConfigPath()
	if err != nil {
		return errors.WithContext(err, "get user config path")
	}
	fmt.Fprintf(stdout, "Wrote config to %s\n", path)
	return nil
}

func setProjectField(update func(*config.Project)) error {
	project, dir, err := getProject()
	if err != nil {
		return err
	}

	update(&project)
	if err := writeProject(dir, project); err != nil {
		return errors.WithContext(err, "write project config")
	}
	return nil
}

func mask(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
