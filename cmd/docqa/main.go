package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/quantia-labs/docqa-cli/internal/adapters/driving/cli"
)

func main() {
	// A .env in the working directory supplies OPENAI_API_KEY during
	// development. Missing files are fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
