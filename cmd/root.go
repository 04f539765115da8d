package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	dataFile  string
	exportDir string
	logLevel  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gva-console",
	Short: "Terminal dashboard for US gun violence statistics",
	Long: `GVA Console is a terminal-first dashboard over Gun Violence Archive
style statistics. It renders a ten-year summary table and a filterable
incident list, exports both as CSV, and talks to the Gemini API for
grounded analyst reports, local safety resource lookups, and chat.

Features:
- Ten-year summary table with year-over-year category counts
- Incident list with case-insensitive state/city filtering
- CSV export for the summary and the filtered incident view
- Search-grounded statistical reports via Gemini
- Maps-grounded local safety resource lookups
- Interactive support-focused chat`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gva-console.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data-file", "", "JSON dataset file (built-in dataset when empty)")
	rootCmd.PersistentFlags().StringVar(&exportDir, "export-dir", ".", "Directory CSV exports are written to")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Bind flags to viper
	viper.BindPFlag("data.file", rootCmd.PersistentFlags().Lookup("data-file"))
	viper.BindPFlag("export.dir", rootCmd.PersistentFlags().Lookup("export-dir"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".gva-console" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gva-console")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// Set defaults
	viper.SetDefault("data.file", "")
	viper.SetDefault("export.dir", ".")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("gemini.endpoint", "")
	viper.SetDefault("gemini.model", "")
	viper.SetDefault("gemini.api_key", "")
	viper.SetDefault("location.lat", 0.0)
	viper.SetDefault("location.lng", 0.0)
}

// GetConfig returns the current configuration values
func GetConfig() Config {
	return Config{
		Data: DataConfig{
			File: viper.GetString("data.file"),
		},
		Export: ExportConfig{
			Dir: viper.GetString("export.dir"),
		},
		Log: LogConfig{
			Level: viper.GetString("log.level"),
		},
		Gemini: GeminiConfig{
			Endpoint: viper.GetString("gemini.endpoint"),
			Model:    viper.GetString("gemini.model"),
			APIKey:   viper.GetString("gemini.api_key"),
		},
		Location: LocationConfig{
			Lat: viper.GetFloat64("location.lat"),
			Lng: viper.GetFloat64("location.lng"),
		},
	}
}

// Config represents the application configuration
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Export   ExportConfig   `mapstructure:"export"`
	Log      LogConfig      `mapstructure:"log"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Location LocationConfig `mapstructure:"location"`
}

type DataConfig struct {
	File string `mapstructure:"file"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type GeminiConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
}

type LocationConfig struct {
	Lat float64 `mapstructure:"lat"`
	Lng float64 `mapstructure:"lng"`
}
