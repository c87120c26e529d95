package main

import (
	"github.com/Worryingcow/Primer-Pairs/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
