package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtsx2py/dtsx2py/internal/diag"
	"github.com/dtsx2py/dtsx2py/internal/dtsx"
)

var validateCmd = &cobra.Command{
	Use:   "validate [package.dtsx]",
	Short: "Check that a file is a well-formed DTSX package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		parser := dtsx.NewParser(diag.NewCollector(log), nil)
		if !parser.ValidateStructure(args[0]) {
			return fmt.Errorf("%s is not a valid DTSX package", args[0])
		}
		fmt.Printf("%s is a valid DTSX package\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
