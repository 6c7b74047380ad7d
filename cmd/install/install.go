package install

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mongo-keeper/cmd/root"
	"mongo-keeper/internal/archive"
	"mongo-keeper/internal/config"
	"mongo-keeper/internal/fetch"
	"mongo-keeper/internal/formula"
	"mongo-keeper/internal/models"
	"mongo-keeper/internal/paths"
	"mongo-keeper/internal/utils"
)

var (
	installVersion  string
	installPlatform string
	installDir      string
)

var installCmd = &cobra.Command{
	Use:   "install [formula name]",
	Short: "Download and unpack a formula without starting it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := installFormula(context.Background(), args[0]); err != nil {
			fmt.Println(err)
		}
	},
}

/**
 * Install a formula artifact into the source cache
 * @param {context.Context} ctx - Context for download cancellation
 * @param {string} name - Formula name, newest version unless --version is given
 * @returns {error} Returns error of the first failing step
 * @description
 * - Performs the download and extraction steps only; the data and log
 *   directories are created on first start
 * - Cached downloads and extractions are reused
 */
func installFormula(ctx context.Context, name string) error {
	registry := formula.GetRegistry()
	var f *models.Formula
	var err error
	if installVersion != "" {
		f, err = registry.LookupVersion(name, installVersion)
	} else {
		f, err = registry.Lookup(name)
	}
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(f, config.Options{Platform: installPlatform, Dir: installDir})
	if err != nil {
		return err
	}
	p := paths.Plan(f, cfg)

	if err := fetch.NewAcquirer().Ensure(ctx, f, cfg, p, utils.NewProgressPrinter().Update); err != nil {
		return err
	}
	if err := archive.Ensure(f, p); err != nil {
		return err
	}
	fmt.Printf("Installed %s %s (%s) to %s\n", f.Name, f.Version, cfg.Platform.Name, p.ExtractDir)
	return nil
}

func init() {
	root.RootCmd.AddCommand(installCmd)

	installCmd.Flags().StringVar(&installVersion, "version", "", "Formula version (default newest registered)")
	installCmd.Flags().StringVar(&installPlatform, "platform", "", "Target platform, e.g. linux-x64")
	installCmd.Flags().StringVar(&installDir, "dir", "", "Base directory for downloads")
	installCmd.Example = `  mongo-keeper install mongodb --platform linux-x64`
}
