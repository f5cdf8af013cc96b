package main

import (
	"github.com/spf13/cobra"
)

var plotCmd = &cobra.Command{
	Use:   "plot <csv> <output>",
	Short: "Save a line or scatter plot",
	Long: `Extracts the selected channels and saves one variable against another.
The format follows the output extension: png, jpg, jpeg, pdf or svg.`,
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
		if err := s.SavePlot(cfg.Selection(), req, args[1]); err != nil {
			return err
		}
		printf(cmd, "Plot saved successfully: %s\n", args[1])
		return nil
	},
}

func init() {
	RootCmd.AddCommand(plotCmd)
	addSelectionFlags(plotCmd)
	addPlotFlags(plotCmd)
}
