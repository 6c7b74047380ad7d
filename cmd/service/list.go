package service

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"github.com/spf13/cobra"

	"mongo-keeper/internal/logger"
	"mongo-keeper/internal/models"
	"mongo-keeper/internal/rpc"
	"mongo-keeper/services"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List known service instances",
	Long:  "List service instances managed by the daemon, or recorded by earlier invocations when no daemon is running",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := listServices(); err != nil {
			fmt.Println(err)
		}
	},
}

func listServices() error {
	cfg := rpc.DefaultHTTPConfig()
	cfg.Timeout = 5 * time.Second
	rpcClient := rpc.NewHTTPClient(cfg)

	resp, err := rpcClient.Get("/mongokeeper/api/v1/services")
	if err != nil {
		logger.Debugf("Daemon is not reachable: %v", err)
		return listRecordedServices()
	}
	if !resp.OK() {
		return fmt.Errorf("failed to list services: %s", string(resp.Body))
	}

	var details []models.ServiceDetail
	if err := json.Unmarshal(resp.Body, &details); err != nil {
		return fmt.Errorf("failed to decode service list: %v", err)
	}
	if len(details) == 0 {
		fmt.Println("No running services")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFORMULA\tVERSION\tPID\tPORT\tSTATE")
	for _, d := range details {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			d.Name, d.Formula, d.Version, d.Pid, d.Port, d.State)
	}
	return w.Flush()
}

/**
 * List the instances recorded by earlier one-shot invocations
 * @description
 * - Records whose process no longer exists are shown as exited
 */
func listRecordedServices() error {
	records := services.GetServiceManager().ListRecords()
	if len(records) == 0 {
		fmt.Println("No recorded services")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFORMULA\tVERSION\tPID\tPORT\tSTATE")
	for _, rec := range records {
		state := "running"
		if alive, _ := process.PidExists(int32(rec.Pid)); !alive {
			state = "exited"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			rec.Name, rec.Formula, rec.Version, rec.Pid, rec.Port, state)
	}
	return w.Flush()
}

func init() {
	serviceCmd.AddCommand(listCmd)

	listCmd.Example = `  mongo-keeper service list`
}
