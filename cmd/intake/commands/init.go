package commands

import (
	"github.com/spf13/cobra"

	"github.com/estatedesk/intake/internal/printer"
	"github.com/estatedesk/intake/internal/scaffold"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a starter estate-intake workspace",
	Long: `Create a starter workspace in the given directory (default: current
directory): a commented estate-intake.yaml, a products/ directory with an
example case, and an empty results/ directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Replace an existing configuration and example case")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	if err := scaffold.Initialize(dir, initForce); err != nil {
		return printer.Error(
			"failed to initialize workspace",
			err.Error(),
			[]string{"Replace existing files:\n  intake init --force"},
		)
	}

	printer.Success("Workspace created\n")
	printer.Info("Drop case photo directories under products/ and run:\n")
	printer.Info("  intake run --products products --results results --config %s\n", scaffold.ConfigFilename)
	return nil
}
