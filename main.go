package main

import "github.com/autodoc-agent/autodoc/cmd"

func main() {
	cmd.Execute()
}
