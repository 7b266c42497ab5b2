// main is the entry point for the svnstat CLI.
package main

import (
	"github.com/huangsam/svnstat/cmd"
	"github.com/huangsam/svnstat/internal/contract"
)

func main() {
	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot write profiles", stopErr)
	}
	if err != nil {
		contract.LogFatal("Cannot run svnstat", err)
	}
}
