package main

import "github.com/panyam/designboard/cmd/designboard/commands"

func main() {
	commands.Execute()
}
