package root

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "mongo-keeper",
	Short: "Local database service keeper",
	Long:  `mongo-keeper downloads, installs and launches locally-run database services such as MongoDB, and keeps track of the instances it started`,
}
