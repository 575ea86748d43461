// Command menumanager is the operator and staff CLI for MenuManager.
//
//	menumanager migrate
//	menumanager seed
//	menumanager login --username alice --password ...
//	MENU_TOKEN=... menumanager dish:list
package main

import (
	"fmt"
	"os"

	"github.com/menumanagerpro/menumanager/pkg/logger"
)

func main() {
	logger.SetOutput(os.Stderr)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
