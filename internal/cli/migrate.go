package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create store indexes or schema",
		Long: `Create the indexes (MongoDB) or tables and indexes (Postgres) used by the API.

The command is idempotent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.container(cmd.Context())
			if err != nil {
				return err
			}
			defer opts.closeContainer(c)

			if err := c.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s store migrated\n", c.Config.StoreDriver)
			return nil
		},
	}
}
