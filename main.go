package main

import (
	"os"

	_ "mongo-keeper/cmd"
	"mongo-keeper/cmd/root"
	"mongo-keeper/internal/config"
	"mongo-keeper/internal/logger"
)

func main() {
	// Server mode mirrors file logs to the console; one-shot commands log
	// to the console only.
	isServerMode := len(os.Args) > 1 && os.Args[1] == "server"

	if isServerMode {
		logger.InitLogger(config.Config.Log.Path, config.Config.Log.Level, true)
	} else {
		logger.InitLogger("console", config.Config.Log.Level, false)
	}

	if err := root.RootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
	os.Exit(0)
}
