package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"github.com/spf13/cobra"

	"mongo-keeper/internal/logger"
	"mongo-keeper/internal/models"
	"mongo-keeper/internal/rpc"
	"mongo-keeper/internal/utils"
	"mongo-keeper/services"
)

var statusCmd = &cobra.Command{
	Use:   "status [service name]",
	Short: "Show the status of one service instance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := showStatus(args[0]); err != nil {
			fmt.Println(err)
		}
	},
}

func showStatus(serviceName string) error {
	cfg := rpc.DefaultHTTPConfig()
	cfg.Timeout = 5 * time.Second
	rpcClient := rpc.NewHTTPClient(cfg)

	resp, err := rpcClient.Get(fmt.Sprintf("/mongokeeper/api/v1/services/%s", serviceName))
	if err != nil {
		logger.Debugf("Daemon is not reachable: %v", err)
		return showRecordedStatus(serviceName)
	}
	if resp.StatusCode == 404 {
		return showRecordedStatus(serviceName)
	}
	if !resp.OK() {
		return fmt.Errorf("failed to get service status: %s", string(resp.Body))
	}

	var detail models.ServiceDetail
	if err := json.Unmarshal(resp.Body, &detail); err != nil {
		return fmt.Errorf("failed to decode service detail: %v", err)
	}
	fmt.Printf("Name: %s\n", detail.Name)
	fmt.Printf("Formula: %s %s (%s)\n", detail.Formula, detail.Version, detail.Platform)
	fmt.Printf("State: %s\n", detail.State)
	fmt.Printf("PID: %d\n", detail.Pid)
	fmt.Printf("Port: %d\n", detail.Port)
	if detail.StartTime != "" {
		fmt.Printf("Started: %s\n", detail.StartTime)
	}
	fmt.Printf("Log file: %s\n", detail.Paths.LogFile)
	fmt.Printf("Data directory: %s\n", detail.Paths.DataDir)
	return nil
}

/**
 * Show status from the persisted record of an earlier invocation
 * @param {string} serviceName - Instance key or formula name
 */
func showRecordedStatus(serviceName string) error {
	var found *models.InstanceRecord
	for _, rec := range services.GetServiceManager().ListRecords() {
		if rec.Formula == serviceName || rec.Name+"/"+rec.Formula == serviceName {
			found = &rec
			break
		}
	}
	if found == nil {
		return fmt.Errorf("no instance found for '%s'", serviceName)
	}

	state := "running"
	if alive, _ := process.PidExists(int32(found.Pid)); !alive {
		state = "exited"
	}
	fmt.Printf("Name: %s\n", found.Name)
	fmt.Printf("Formula: %s %s (%s)\n", found.Formula, found.Version, found.Platform)
	fmt.Printf("State: %s\n", state)
	fmt.Printf("PID: %d\n", found.Pid)
	fmt.Printf("Port: %d (connectable: %v)\n", found.Port, utils.CheckPortConnectable(found.Port))
	fmt.Printf("Started: %s\n", found.StartTime)
	fmt.Printf("Log file: %s\n", found.LogFile)
	return nil
}

func init() {
	serviceCmd.AddCommand(statusCmd)

	statusCmd.Example = `  mongo-keeper service status mongodb`
}
