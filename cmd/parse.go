package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/render"
	"github.com/abhisek/mathgen/internal/tagged"
)

var parseCmd = &cobra.Command{
	Use:   "parse <raw-file>...",
	Short: "Render tagged question files to PDF without calling any model",
	Long:  "Each file holds one raw tagged question block. The blocks are parsed in argument order and rendered to a PDF.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("output") {
			cfg.Output, _ = cmd.Flags().GetString("output")
		}

		raws := make([]string, len(args))
		for i, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			raws[i] = string(data)
		}
		records := tagged.ParseAll(raws)

		out := cmd.OutOrStdout()
		if preview, _ := cmd.Flags().GetBool("preview"); preview {
			if err := render.Preview(out, cfg.PDF.Title, records); err != nil {
				return err
			}
		}

		if err := render.WritePDF(cfg.Output, records, cfg.PDF); err != nil {
			return err
		}
		fmt.Fprintf(out, "Questions saved to: %s\n", cfg.Output)
		return nil
	},
}

func init() {
	parseCmd.Flags().StringP("output", "o", "", "Output PDF path (default output/generated_questions.pdf)")
	parseCmd.Flags().Bool("preview", false, "Print a styled preview of the parsed questions")
}
