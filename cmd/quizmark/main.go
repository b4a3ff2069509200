package main

import (
	"os"

	"github.com/SAP-F-2025/quizmark/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
