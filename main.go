// main is the entry point for the partnerscore CLI.
package main

import (
	"github.com/huangsam/partnerscore/cmd"
	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/internal/iocache"
)

func main() {
	defer iocache.CloseStore()
	cmd.SetStoreManager(iocache.Manager)
	if err := cmd.Execute(); err != nil {
		iocache.CloseStore()
		contract.LogFatal("Command failed", err)
	}
}
