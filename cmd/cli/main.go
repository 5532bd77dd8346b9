package main

import "github.com/alextreichler/carrental/cmd/cli/commands"

func main() {
	commands.Execute()
}
