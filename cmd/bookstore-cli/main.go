package main

import (
	"bookstore-client/cmd/bookstore-cli/commands"
	"bookstore-client/lib/util/cliutil"
)

func main() {
	commands.Execute(cliutil.SignalContext())
}
