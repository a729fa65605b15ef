// Command contribgrid renders text onto a contribution calendar and turns it
// into a repository whose commit history draws that text.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
