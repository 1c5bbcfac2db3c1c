package main

import (
	"PlanPhotos/config"
	"fmt"
	"os"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	app := newApp(cfg, os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
