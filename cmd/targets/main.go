package main

import (
	"fmt"
	"os"

	"github.com/Dan9191/commission-tracker/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	c := cli.NewCLI(cli.Options{
		Output: os.Stdout,
	})

	if err := c.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
