// Package main is the entry point for the irmetrics CLI.
package main

import (
	"github.com/huangsam/irmetrics/cmd"
	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/huangsam/irmetrics/internal/iocache"
)

func main() {
	cmd.SetRunManager(iocache.Manager)
	defer iocache.CloseStores()

	if err := cmd.Execute(); err != nil {
		iocache.CloseStores()
		contract.LogFatal("Error starting CLI", err)
	}
}
