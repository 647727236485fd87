// Package main is the entry point for the scorecard CLI.
package main

import (
	"github.com/huangsam/scorecard/cmd"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/history"
)

func main() {
	cmd.SetHistoryManager(history.Manager)
	err := cmd.Execute()
	history.CloseHistory()
	if err != nil {
		contract.LogFatal("Error running command", err)
	}
}
