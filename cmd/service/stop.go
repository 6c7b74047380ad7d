package service

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mongo-keeper/internal/logger"
	"mongo-keeper/internal/rpc"
	"mongo-keeper/services"
)

var stopCmd = &cobra.Command{
	Use:   "stop [service name]",
	Short: "Stop a running service",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := stopService(args[0]); err != nil {
			fmt.Println(err)
		}
	},
}

/**
 * Stop service by name
 * @param {string} serviceName - Instance key or formula name
 * @returns {error} Returns error if service stop fails, nil on success
 * @description
 * - Asks a running daemon first, so instances owned by the daemon are closed
 *   through their lifecycle
 * - Falls back to the persisted instance record of an earlier invocation
 */
func stopService(serviceName string) error {
	cfg := rpc.DefaultHTTPConfig()
	cfg.Timeout = 10 * time.Second
	rpcClient := rpc.NewHTTPClient(cfg)

	apiPath := fmt.Sprintf("/mongokeeper/api/v1/services/%s/stop", serviceName)
	resp, err := rpcClient.Post(apiPath, nil)
	if err != nil {
		logger.Debugf("Daemon is not reachable: %v", err)
		return stopServiceLocally(serviceName)
	}
	if !resp.OK() {
		return fmt.Errorf("failed to stop service '%s': %s", serviceName, string(resp.Body))
	}
	fmt.Printf("Service %s has been stopped via mongo-keeper daemon\n", serviceName)
	return nil
}

func stopServiceLocally(serviceName string) error {
	manager := services.GetServiceManager()
	if err := manager.StopService(serviceName); err != nil {
		return fmt.Errorf("failed to stop service: %v", err)
	}
	fmt.Printf("Service %s has been stopped\n", serviceName)
	return nil
}

func init() {
	serviceCmd.AddCommand(stopCmd)

	stopCmd.Example = `  mongo-keeper service stop mongodb`
}
