package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/config"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/session"
)

var cfgFile string

// RootCmd is the base command when called without any subcommands. With
// frontend set to gui it opens the desktop window instead of printing help.
var RootCmd = &cobra.Command{
	Use:   "papyrus",
	Short: "Sensor log extractor and plotter",
	Long: `Papyrus reads the CSV export of a pressure/temperature data logger,
extracts the selected pressure and temperature channels, prints summary
statistics and saves labeled line or scatter plots.

Every flag can also be set in papyrus.yaml or as a PAPYRUS_* environment
variable (PAPYRUS_PRESSURE_CHANNEL=2).`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		if cfg.Frontend == config.FrontendGUI {
			return runGUI(cfg)
		}
		return cmd.Help()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		jww.ERROR.Printf("%s: %v", errs.Title(err), err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is papyrus.yaml)")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().String("log-file", "", "Also write log messages to this file")
	RootCmd.PersistentFlags().String("encoding", "cp949", "Character set of the CSV file")
	RootCmd.PersistentFlags().Int("preamble-lines", 0, "Lines to skip before the header line")
	RootCmd.PersistentFlags().String("frontend", config.FrontendCLI, "Front end opened by the bare command, one of [cli, gui]")

	viper.BindPFlags(RootCmd.PersistentFlags())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.Setup(viper.GetViper(), cfgFile)

	if err := viper.ReadInConfig(); err == nil {
		jww.DEBUG.Println("Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		jww.ERROR.Printf("Failed to read config file %s: %v", cfgFile, err)
	}

	if viper.GetBool("verbose") {
		jww.SetStdoutThreshold(jww.LevelTrace)
	}
	if path := viper.GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			jww.ERROR.Printf("Failed to open log file %s: %v", path, err)
			return
		}
		jww.SetLogOutput(f)
		jww.SetLogThreshold(jww.LevelInfo)
	}
}

// bindFlags is the PreRunE of every command with local flags. Binding at
// run time keeps commands that share a flag name from overwriting each
// other's binding.
func bindFlags(cmd *cobra.Command, args []string) error {
	return viper.BindPFlags(cmd.Flags())
}

func addSelectionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("pressure-channel", 1, "Pressure channel (1-2)")
	f.Int("temperature-channel", 1, "Temperature channel (1-4)")
	f.Float64("pressure-divisor", 1, "Divisor applied to raw pressure readings")
	f.Float64("temperature-divisor", 10, "Divisor applied to raw temperature readings")
}

func addPlotFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("x", "Time", "X variable, one of [Time, Temperature, Pressure]")
	f.String("y", "Pressure", "Y variable, one of [Pressure, Temperature]")
	f.String("x-label", "Time", "X axis label")
	f.String("y-label", "Pressure", "Y axis label")
	f.String("x-range", "", `X axis bounds as "min,max"`)
	f.String("y-range", "", `Y axis bounds as "min,max"`)
	f.String("time-unit", "Seconds", "Time unit, one of [Seconds, Minutes, Hours]")
	f.String("style", "Line", "Plot style, one of [Line, Scatter]")
	f.Int("size", 2, "Line width or marker size")
	f.Int("dpi", 300, "Output resolution")
	f.Bool("transparent", false, "Transparent background")
	f.String("renderer", "gonum", "Chart back end, one of [gonum, gochart]")
}

// open loads the configuration and the CSV file at path into a session.
func open(path string) (*config.Config, *session.Session, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}
	r, err := cfg.NewRenderer()
	if err != nil {
		return nil, nil, err
	}
	s := session.New(cfg.ParserOptions(), r)
	if _, err := s.Load(path, cfg.Selection()); err != nil {
		return nil, nil, err
	}
	return cfg, s, nil
}

func printf(cmd *cobra.Command, format string, a ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format, a...)
}
