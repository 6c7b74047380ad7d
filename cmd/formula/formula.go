package formula

import (
	"mongo-keeper/cmd/root"

	"github.com/spf13/cobra"
)

var formulaCmd = &cobra.Command{
	Use:   "formula",
	Short: "Formula operations (list/show)",
	Long:  `Formula operations (list/show)`,
}

func init() {
	root.RootCmd.AddCommand(formulaCmd)

	formulaCmd.Example = `  mongo-keeper formula list`
}
