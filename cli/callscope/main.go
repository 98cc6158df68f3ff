package main

import (
	"os"

	callscopecmder "github.com/callscopeco/callscope/cmd/callscope"
)

func main() {
	cmd := callscopecmder.NewCallscopeCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
