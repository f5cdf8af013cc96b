package main

import (
	"github.com/spf13/cobra"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/report"
)

var reportCmd = &cobra.Command{
	Use:     "report <csv> <output.pdf>",
	Short:   "Write a summary PDF",
	Long:    `Writes a PDF with the channel selection, summary statistics, the first preview rows and the plot.`,
	Args:    cobra.ExactArgs(2),
	PreRunE: bindFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, s, err := open(args[0])
		if err != nil {
			return err
		}
		req, err := cfg.PlotForm().Request()
		if err != nil {
			return err
		}
		if err := s.SaveReport(cfg.Selection(), req, cfg.Rows, args[1]); err != nil {
			return err
		}
		printf(cmd, "Report saved successfully: %s\n", args[1])
		return nil
	},
}

func init() {
	RootCmd.AddCommand(reportCmd)
	addSelectionFlags(reportCmd)
	addPlotFlags(reportCmd)
	reportCmd.Flags().Int("rows", report.DefaultPreviewRows, "Preview rows in the report")
}
