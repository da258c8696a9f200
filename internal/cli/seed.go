package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"eventbooking/internal/seed"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	File string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all events with a seed catalogue",
		Long: `Delete every booking and event, then insert the events of a YAML catalogue.

Without --file the built-in anime event catalogue is used. The catalogue is
validated before anything is deleted.

Example:
  eventbooking seed
  eventbooking seed --file ./events.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := seed.Load(opts.File)
			if err != nil {
				return err
			}
			c, err := opts.container(cmd.Context())
			if err != nil {
				return err
			}
			defer opts.closeContainer(c)

			stored, err := c.Seeder.Seed(cmd.Context(), events)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, e := range stored {
				fmt.Fprintf(out, "%d. %s (%s)\n", i+1, e.Title, e.Slug)
			}
			fmt.Fprintf(out, "seeded %d events\n", len(stored))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "path to a YAML event catalogue")

	return cmd
}
