package main

import "github.com/agentic-research/keysearch/cmd"

func main() {
	cmd.Execute()
}
