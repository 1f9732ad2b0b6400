package main

import "pricescan/cmd/pricescan/commands"

func main() {
	commands.Execute()
}
