// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"

	"github.com/LeeDigitalWorks/zaplambda/pkg/logger"
	"github.com/LeeDigitalWorks/zaplambda/pkg/utils"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configFileName = "zaplambda"

var rootCmd = &cobra.Command{
	Use:   "zaplambda",
	Short: "zaplambda - S3 Object Lambda transform function",
	Long: `zaplambda serves S3 Object Lambda events. GetObject requests are fetched
through the presigned URL, transformed, narrowed to the caller's Range or
partNumber and returned with WriteGetObjectResponse. HeadObject and
ListObjects events are answered directly.`,
	PersistentPreRun: initialize,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&utils.ConfigurationFileDirectory, "config_dir", ".", "Directory for configuration files")
	pf.String("log_level", "info", "Log level (trace, debug, info, warn, error)")

	viper.BindPFlags(pf)
}

// initialize loads the configuration file and applies the log level before
// any subcommand runs.
func initialize(cmd *cobra.Command, args []string) {
	utils.LoadConfiguration(configFileName, false)

	levelName := NewFlagLoader(cmd).String("log_level")
	level, err := zerolog.ParseLevel(levelName)
	if err != nil || level == zerolog.NoLevel {
		logger.Warn().Str("log_level", levelName).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	logger.SetLevel(level)
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
