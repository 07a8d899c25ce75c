// Command geotag bridges annotated documents and a GeoNames FST
// gazetteer service.
package main

import (
	"os"

	"github.com/annolab/geotag/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
