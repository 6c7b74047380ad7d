package formula

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mongo-keeper/internal/formula"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered formulas",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listFormulas()
	},
}

func listFormulas() {
	registry := formula.GetRegistry()
	names := registry.Names()
	if len(names) == 0 {
		fmt.Println("No formulas registered")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSIONS\tDEFAULT PORT")
	for _, name := range names {
		f, err := registry.Lookup(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", name, strings.Join(registry.Versions(name), ", "), f.Port)
	}
	w.Flush()
}

func init() {
	formulaCmd.AddCommand(listCmd)
}
