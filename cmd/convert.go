package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtsx2py/dtsx2py/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert [package.dtsx]",
	Short: "Convert a single DTSX package to Python",
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

		conv := convert.New(convert.Options{
			OutputDir: cfg.OutputDir,
			Overwrite: cfg.Overwrite,
			Logger:    log,
		})
		res, err := conv.ConvertFile(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Generated %d files in %s\n", len(res.Paths), cfg.OutputDir)
		if res.Diagnostics.Total > 0 {
			fmt.Printf("Diagnostics: %d (see summary file for details)\n", res.Diagnostics.Total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
