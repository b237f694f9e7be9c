package main

import "github.com/itsmostafa/snapbook/cmd"

func main() {
	cmd.Execute()
}
