package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtsx2py/dtsx2py/internal/convert"
)

var batchRecursive bool

var batchCmd = &cobra.Command{
	Use:   "batch [directory]",
	Short: "Convert every DTSX package in a directory",
	Long: `Converts each .dtsx file found directly under the directory, or in
the whole tree with --recursive. Packages fail independently: one
malformed file does not stop the rest.`,
	Args: cobra.ExactArgs(1),
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

		if batchRecursive {
			cfg.Recursive = true
		}
		conv := convert.New(convert.Options{
			OutputDir: cfg.OutputDir,
			Overwrite: cfg.Overwrite,
			Parallel:  cfg.Parallel,
			Recursive: cfg.Recursive,
			Logger:    log,
		})
		batch, err := conv.ConvertDir(args[0])
		if batch != nil {
			fmt.Printf("Converted %d/%d packages\n",
				batch.Succeeded, batch.Succeeded+batch.Failed)
			total := 0
			for _, res := range batch.Results {
				total += res.Diagnostics.Total
			}
			if total > 0 {
				fmt.Printf("Diagnostics: %d (see the summary files for details)\n", total)
			}
		}
		return err
	},
}

func init() {
	batchCmd.Flags().BoolVarP(&batchRecursive, "recursive", "r", false, "Descend into subdirectories")
	rootCmd.AddCommand(batchCmd)
}
