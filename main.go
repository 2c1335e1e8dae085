package main

import (
	"daysquare/cmd/commands"
)

var (
	version = "dev" // will be set during build
)

func main() {
	commands.Version = version
	commands.Execute()
}
