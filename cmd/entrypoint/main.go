package main

import (
	// Import the cmd directory with root.go
	"github.com/redjax/nbview/cmd"
)

func main() {
	cmd.Execute()
}
