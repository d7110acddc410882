package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Zereker/vecns/internal/app"
	"github.com/Zereker/vecns/internal/domain"
)

var deleteIndex string

var deleteCmd = &cobra.Command{
	Use:   "delete <namespace...>",
	Short: "Delete namespaces and all their vectors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reqs := make([]domain.NamespaceRequest, len(args))
		for i, name := range args {
			reqs[i] = domain.NamespaceRequest{Index: indexOrDefault(deleteIndex), Namespace: name}
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			results, err := a.Namespaces().Delete(ctx, reqs...)
			if perr := printResults(cmd.OutOrStdout(), results); perr != nil {
				return perr
			}
			return err
		})
	},
}

func init() {
	deleteCmd.Flags().StringVarP(&deleteIndex, "index", "i", "", "index name (default from config)")
	rootCmd.AddCommand(deleteCmd)
}
