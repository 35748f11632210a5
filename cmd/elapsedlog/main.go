package main

import (
	"github.com/livp123/elapsedlog/cmd/elapsedlog/commands"
)

func main() {
	commands.Execute()
}
