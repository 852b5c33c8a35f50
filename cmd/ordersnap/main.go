// Command ordersnap imports purchase orders from saved order-history pages.
package main

import (
	"os"

	"github.com/custodia-labs/ordersnap/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(wire); err != nil {
		os.Exit(1)
	}
}
