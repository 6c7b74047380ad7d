package service

import (
	"mongo-keeper/cmd/root"

	"github.com/spf13/cobra"
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Service operations (list/start/stop/status)",
	Long:  `Service operations (list/start/stop/status)`,
}

const serviceExample = `  # start a mongodb instance
  mongo-keeper service start mongodb --port 27018`

func init() {
	root.RootCmd.AddCommand(serviceCmd)

	serviceCmd.Example = serviceExample
}
