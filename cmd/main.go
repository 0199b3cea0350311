package main

import (
	"log"
	"os"

	"splittimer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Printf("splittimer: %v", err)
		os.Exit(1)
	}
}
