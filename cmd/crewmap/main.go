package main

import (
	"log"
	"os"

	"crewmap/internal/ui"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := newRootCmd().Execute(); err != nil {
		ui.Bad.Fprintf(os.Stderr, "crewmap: %v\n", err)
		os.Exit(1)
	}
}
