package formula

import (
	"fmt"

	"github.com/spf13/cobra"

	"mongo-keeper/internal/formula"
	"mongo-keeper/internal/models"
)

var showVersion string

var showCmd = &cobra.Command{
	Use:   "show [formula name]",
	Short: "Show the definition of one formula",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := showFormula(args[0]); err != nil {
			fmt.Println(err)
		}
	},
}

func showFormula(name string) error {
	registry := formula.GetRegistry()
	var f *models.Formula
	var err error
	if showVersion != "" {
		f, err = registry.LookupVersion(name, showVersion)
	} else {
		f, err = registry.Lookup(name)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Name: %s\n", f.Name)
	fmt.Printf("Version: %s\n", f.Version)
	fmt.Printf("Executable: %s\n", f.Exec)
	fmt.Printf("Arguments: %s\n", f.ExecArgs)
	fmt.Printf("Default port: %d\n", f.Port)
	fmt.Println("Platforms:")
	for _, p := range f.Platforms {
		fmt.Printf("  %s\t%s\n", p.Name, p.SourceURL)
	}
	return nil
}

func init() {
	formulaCmd.AddCommand(showCmd)

	showCmd.Flags().StringVar(&showVersion, "version", "", "Formula version (default newest registered)")
	showCmd.Example = `  mongo-keeper formula show mongodb`
}
