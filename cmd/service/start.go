package service

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mongo-keeper/internal/config"
	"mongo-keeper/internal/logger"
	"mongo-keeper/internal/rpc"
	"mongo-keeper/internal/utils"
	"mongo-keeper/services"
)

var (
	startName     string
	startPlatform string
	startDir      string
	startPort     int
	startArgs     []string
	startWait     time.Duration
)

var startCmd = &cobra.Command{
	Use:   "start [formula name]",
	Short: "Install (if needed) and start a service",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := startService(context.Background(), args[0]); err != nil {
			fmt.Println(err)
		}
	},
}

type startRequest struct {
	Name     string   `json:"name,omitempty"`
	Platform string   `json:"platform,omitempty"`
	Dir      string   `json:"dir,omitempty"`
	Port     int      `json:"port,omitempty"`
	Args     []string `json:"args,omitempty"`
}

/**
 * Start service by formula name
 * @param {context.Context} ctx - Context for request cancellation and timeout
 * @param {string} formulaName - Name of the formula to start
 * @returns {error} Returns error if service start fails, nil on success
 * @description
 * - Asks a running daemon first so the instance is supervised
 * - Falls back to the local service manager when no daemon is reachable
 * @throws
 * - Formula lookup and launch failure errors
 */
func startService(ctx context.Context, formulaName string) error {
	cfg := rpc.DefaultHTTPConfig()
	cfg.Timeout = 10 * time.Minute
	rpcClient := rpc.NewHTTPClient(cfg)

	apiPath := fmt.Sprintf("/mongokeeper/api/v1/services/%s/start", formulaName)
	body := &startRequest{
		Name:     startName,
		Platform: startPlatform,
		Dir:      startDir,
		Port:     startPort,
		Args:     startArgs,
	}
	resp, err := rpcClient.Post(apiPath, body)
	if err != nil {
		logger.Debugf("Daemon is not reachable: %v", err)
		return startServiceLocally(ctx, formulaName)
	}
	if !resp.OK() {
		return fmt.Errorf("failed to start service '%s': %s", formulaName, string(resp.Body))
	}
	fmt.Printf("Service %s has been started via mongo-keeper daemon\n", formulaName)
	return nil
}

/**
 * Start service using the local service manager
 * @param {context.Context} ctx - Context for download cancellation
 * @param {string} formulaName - Name of the formula to start
 * @returns {error} Returns error if service start fails, nil on success
 * @description
 * - Downloads and unpacks the formula artifact when not cached, showing
 *   progress on the terminal
 * - The launched process is detached so it survives this invocation
 */
func startServiceLocally(ctx context.Context, formulaName string) error {
	manager := services.GetServiceManager()
	opts := config.Options{
		Name:     startName,
		Platform: startPlatform,
		Dir:      startDir,
		Port:     startPort,
		Args:     startArgs,
	}
	si, err := manager.StartFormula(ctx, formulaName, opts, utils.NewProgressPrinter().Update)
	if err != nil {
		return fmt.Errorf("failed to start service: %v", err)
	}
	if startWait > 0 {
		waitCtx, cancel := context.WithTimeout(ctx, startWait)
		defer cancel()
		if err := si.WaitReady(waitCtx); err != nil {
			return fmt.Errorf("service %s did not become ready within %s", si.Name, startWait)
		}
	}
	fmt.Printf("Service %s has been started locally (PID: %d, port: %d)\n",
		si.Name, si.Pid(), si.Config.Port)
	return nil
}

func init() {
	serviceCmd.AddCommand(startCmd)

	startCmd.Flags().StringVar(&startName, "name", "", "Instance name (default \"default\")")
	startCmd.Flags().StringVar(&startPlatform, "platform", "", "Target platform, e.g. linux-x64")
	startCmd.Flags().StringVar(&startDir, "dir", "", "Base directory for data, logs and downloads")
	startCmd.Flags().IntVar(&startPort, "port", 0, "Listen port for the service")
	startCmd.Flags().StringArrayVar(&startArgs, "arg", nil, "Extra argument appended to the command line (repeatable)")
	startCmd.Flags().DurationVar(&startWait, "wait", 0, "Wait until the port accepts connections, e.g. 30s")
	startCmd.Example = `  mongo-keeper service start mongodb --port 27018 --wait 30s`
}
