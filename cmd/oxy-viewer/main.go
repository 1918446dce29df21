// Command oxy-viewer renders the lit demo scene and inspects its configuration.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
