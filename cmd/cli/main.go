package main

import "bnin/cmd/cli/command"

func main() {
	command.Execute()
}
