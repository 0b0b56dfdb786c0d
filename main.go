// ABOUTME: Entry point for hackctl CLI
// ABOUTME: Terminal client for managing hackathon postings on the jobs backend

package main

import (
	"fmt"
	"os"

	"github.com/saarthix/hackctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
