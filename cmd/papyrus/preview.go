package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/analysis"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

var previewCmd = &cobra.Command{
	Use:     "preview <csv>",
	Short:   "Show the first rows and summary statistics",
	Long:    `Extracts the selected channels and prints the data preview next to the mean and standard deviation of pressure and temperature.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: bindFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, s, err := open(args[0])
		if err != nil {
			return err
		}
		ext, err := s.Extract(cfg.Selection())
		if err != nil {
			return err
		}
		printf(cmd, "%s\n", renderPreview(args[0], ext, cfg.Rows))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(previewCmd)
	addSelectionFlags(previewCmd)
	previewCmd.Flags().Int("rows", report.DefaultPreviewRows, "Rows to show, 0 for all")
}

// renderPreview lays the data preview and the statistics out side by side.
func renderPreview(source string, ext *analysis.Extraction, rows int) string {
	data := headerStyle.Render("Data preview") + "\n" +
		strings.TrimRight(report.FormatPreview(report.PreviewRows(&ext.Series, rows)), "\n")

	var stats strings.Builder
	stats.WriteString(headerStyle.Render("Treated data"))
	for _, l := range report.StatLines(ext) {
		fmt.Fprintf(&stats, "\n%s %s", labelStyle.Render(fmt.Sprintf("%-17s", l.Label+":")), l.Value)
	}
	fmt.Fprintf(&stats, "\n%s %d", labelStyle.Render(fmt.Sprintf("%-17s", "Samples:")), ext.Series.Len())

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(source),
		lipgloss.JoinHorizontal(lipgloss.Top, paneStyle.Render(data), paneStyle.Render(stats.String())),
	)
}
