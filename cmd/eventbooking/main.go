// Command eventbooking runs the event discovery and booking API.
//
//	@title			Event Booking API
//	@version		1.0
//	@description	Event discovery and booking backend.
//	@BasePath		/
package main

import (
	"context"
	"fmt"
	"os"

	"eventbooking/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
