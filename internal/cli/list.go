package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Zereker/vecns/internal/app"
	"github.com/Zereker/vecns/internal/domain"
)

var listIndex string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the namespaces of an index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			namespaces, err := a.Namespaces().List(ctx, indexOrDefault(listIndex))
			if err != nil {
				return err
			}
			return printNamespaces(cmd.OutOrStdout(), namespaces)
		})
	},
}

var describeIndex string

var describeCmd = &cobra.Command{
	Use:   "describe <namespace>",
	Short: "Show a single namespace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			ns, err := a.Namespaces().Describe(ctx, indexOrDefault(describeIndex), args[0])
			if err != nil {
				return err
			}
			return printNamespaces(cmd.OutOrStdout(), []domain.Namespace{ns})
		})
	},
}

func init() {
	listCmd.Flags().StringVarP(&listIndex, "index", "i", "", "index name (default from config)")
	describeCmd.Flags().StringVarP(&describeIndex, "index", "i", "", "index name (default from config)")
	rootCmd.AddCommand(listCmd, describeCmd)
}
