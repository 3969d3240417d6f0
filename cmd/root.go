package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string
var logger *zap.SugaredLogger
var resultsDir string

var rootCmd = &cobra.Command{
	Use:   "bankaudit",
	Short: "Audit web sites against a transport-security best-practice checklist",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".bankaudit")
			viper.SetConfigType("yaml")
		}

		_ = viper.ReadInConfig()
		if resultsDir == "" {
			resultsDir = viper.GetString("results_dir")
		}
		if resultsDir == "" {
			resultsDir = "./results"
		}

		if err := os.MkdirAll(resultsDir, 0o755); err != nil {
			return fmt.Errorf("failed to create results directory: %s", err.Error())
		}
		if abs, err := filepath.Abs(resultsDir); err == nil {
			resultsDir = abs
		}

		// init logger
		l, _ := zap.NewProduction()
		logger = l.Sugar()

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(colorError(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bankaudit.yaml)")
	rootCmd.PersistentFlags().StringVar(&resultsDir, "results-dir", "", "directory for scan artifacts (default ./results)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(versionCmd)
}
