package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Zereker/vecns/internal/app"
)

const defaultConfigFile = "configs/vecns.toml"

var (
	cfgFile string
	envFile string
	output  string
	cfg     app.Config

	// appOptions are passed to app.New; tests use them to inject dependencies.
	appOptions []app.Option
)

var rootCmd = &cobra.Command{
	Use:   "vecns",
	Short: "Provision namespaces in a hosted vector database index",
	Long: `vecns manages namespaces inside an index of a hosted vector database.

The API key is read from PINECONE_API_KEY (the nearest .env file in the
working directory or a parent is loaded first). Index and namespace default to the values in
the config file.

Example usage:
  vecns create                              # Create the configured namespace
  vecns create tenant-a tenant-b -i docs    # Create two namespaces in index "docs"
  vecns list -i docs                        # List namespaces with vector counts
  vecns delete tenant-a -i docs             # Delete a namespace and its vectors`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if output != "text" && output != "json" {
			return fmt.Errorf("invalid output %q, must be text or json", output)
		}

		path := cfgFile
		if !cmd.Flag("config").Changed {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				path = ""
			}
		}

		var err error
		cfg, err = app.LoadConfig(path, envFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigFile, "config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "env file loaded before reading the environment, searched from the working directory upward")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "output format: text or json")
}

// withApp initialises the app, runs fn and shuts the app down.
// The context is cancelled on SIGINT/SIGTERM or when the run timeout elapses.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	opts := append([]app.Option{app.WithLogWriter(cmd.ErrOrStderr())}, appOptions...)

	a, err := app.New(cfg, opts...)
	if err != nil {
		return err
	}
	defer func() { _ = a.Shutdown() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if timeout := cfg.Run.TimeoutDuration(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return fn(ctx, a)
}

// indexOrDefault returns flag, or the configured index when flag is empty.
func indexOrDefault(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.Target.Index
}
