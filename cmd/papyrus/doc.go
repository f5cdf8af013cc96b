package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/viper"
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Documentation generator",
	Long:  `Generators for man pages and Markdown documentation.`,
}

var manCmd = &cobra.Command{
	Use:     "man",
	Short:   "Generate man pages",
	Long:    `Generates a set of man pages for papyrus.`,
	PreRunE: bindFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		header := &doc.GenManHeader{
			Title:   "PAPYRUS",
			Section: "1",
		}
		return doc.GenManTree(RootCmd, header, viper.GetString("output"))
	},
}

var markdownCmd = &cobra.Command{
	Use:     "markdown",
	Short:   "Generate Markdown documentation",
	Long:    `Generates documentation for papyrus in Markdown format.`,
	PreRunE: bindFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doc.GenMarkdownTree(RootCmd, viper.GetString("output"))
	},
}

func init() {
	RootCmd.AddCommand(docCmd)
	docCmd.PersistentFlags().String("output", "./", "Output directory")
	docCmd.AddCommand(manCmd)
	docCmd.AddCommand(markdownCmd)
}
