package main

import "github.com/agentic-research/slidescope/cmd"

func main() {
	cmd.Execute()
}
