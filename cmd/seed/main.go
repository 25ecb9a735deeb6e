package main

import (
	"github.com/docsession/docsession/pkg/logger"
)

func main() {
	defer logger.Sync()
	if err := RootCmd.Execute(); err != nil {
		logger.Fatalf("%v", err)
	}
}
