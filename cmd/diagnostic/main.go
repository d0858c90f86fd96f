// File: cmd/diagnostic/main.go
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/pillai-nz/go-pillai/internal/cli"
)

func main() {
	// a local .env is optional; PILLAI_* variables may also come from the shell
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
