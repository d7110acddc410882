package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zereker/vecns/internal/app"
	"github.com/Zereker/vecns/internal/domain"
)

var (
	createIndex       string
	createIfNotExists bool
)

var createCmd = &cobra.Command{
	Use:   "create [namespace...]",
	Short: "Create namespaces in an index",
	Long: `Create one or more namespaces in an index. Without arguments the
namespace from the config file is created.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if len(names) == 0 {
			if cfg.Target.Namespace == "" {
				return fmt.Errorf("no namespace given and none configured")
			}
			names = []string{cfg.Target.Namespace}
		}

		reqs := make([]domain.NamespaceRequest, len(names))
		for i, name := range names {
			reqs[i] = domain.NamespaceRequest{
				Index:       indexOrDefault(createIndex),
				Namespace:   name,
				IfNotExists: createIfNotExists,
			}
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			results, err := a.Namespaces().Create(ctx, reqs...)
			if perr := printResults(cmd.OutOrStdout(), results); perr != nil {
				return perr
			}
			return err
		})
	},
}

func init() {
	createCmd.Flags().StringVarP(&createIndex, "index", "i", "", "index name (default from config)")
	createCmd.Flags().BoolVar(&createIfNotExists, "if-not-exists", false, "succeed if the namespace already exists")
	rootCmd.AddCommand(createCmd)
}
