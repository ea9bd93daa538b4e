package main

import (
	"fmt"
	"os"

	"perftrack/internal/app/server"
)

func main() {
	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "perftrack: %v\n", err)
		os.Exit(1)
	}
}
