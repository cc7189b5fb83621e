package main

import "plantsel/cmd/plantsel/commands"

func main() {
	commands.Execute()
}
