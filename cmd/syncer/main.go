package main

import (
	"os"

	"github.com/MichalMitros/supplier-feed-sync/cmd/syncer/app"
)

func main() {
	if err := app.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
