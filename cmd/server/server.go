package server

import (
	"fmt"
	"net"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"mongo-keeper/cmd/root"
	"mongo-keeper/controllers"
	"mongo-keeper/internal/config"
	"mongo-keeper/internal/env"
	"mongo-keeper/internal/logger"
	"mongo-keeper/internal/middleware"
	"mongo-keeper/internal/shutdown"
	"mongo-keeper/services"
)

var listenAddr string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the keeper daemon with an HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		if err := startServer(); err != nil {
			logger.Fatal(err)
		}
	},
}

/**
 * Start the HTTP daemon
 * @returns {error} Returns error when the listener cannot be started
 * @description
 * - Instances started in daemon mode stay children of this process and are
 *   closed through the shutdown registry on SIGINT/SIGTERM
 */
func startServer() error {
	env.Daemon = true
	if addr := listenAddr; addr != "" {
		config.Config.Server.Address = addr
	}
	if _, port, err := net.SplitHostPort(config.Config.Server.Address); err == nil {
		env.ListenPort, _ = strconv.Atoi(port)
	}

	gin.SetMode(config.Config.Server.Mode)
	router := gin.Default()
	router.Use(middleware.MetricsMiddleware())

	svcManager := services.GetServiceManager()
	apiController := controllers.NewAPIController(svcManager)
	apiController.RegisterRoutes(router)

	stop := shutdown.Default().HandleSignals()
	defer stop()

	logger.Infof("Daemon listening on %s", config.Config.Server.Address)
	if err := router.Run(config.Config.Server.Address); err != nil {
		return fmt.Errorf("failed to start HTTP server: %v", err)
	}
	return nil
}

func init() {
	root.RootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default from config, 127.0.0.1:27077)")
	serverCmd.Example = `  mongo-keeper server --listen 127.0.0.1:27077`
}
