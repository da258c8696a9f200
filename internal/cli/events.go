package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewEventsCommand creates the events command group.
func NewEventsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Administer stored events",
	}
	cmd.AddCommand(newEventsDeleteCommand(opts))
	return cmd
}

func newEventsDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <slug>",
		Short:   "Delete an event and its bookings",
		Example: "  eventbooking events delete anime-expo-2024",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.container(cmd.Context())
			if err != nil {
				return err
			}
			defer opts.closeContainer(c)

			removed, err := c.Events.DeleteEvent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted event %s and %d bookings\n", args[0], removed)
			return nil
		},
	}
}
