package main

import (
	"log"
	"os"

	"github.com/yourusername/quiz-api/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Printf("Fatal: %v", err)
		os.Exit(1)
	}
}
