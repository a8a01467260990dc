// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/LeeDigitalWorks/zaplambda/pkg/logger"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run under the AWS Lambda runtime",
	Long: `Start the Lambda runtime loop. This is the entrypoint of the deployed
function; configuration comes from ZAPLAMBDA_* environment variables.`,
	Run: runLambda,
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
	addPipelineFlags(lambdaCmd)

	viper.BindPFlags(lambdaCmd.Flags())
}

func runLambda(cmd *cobra.Command, args []string) {
	opts := loadPipelineOpts(cmd)

	handler, err := buildHandler(cmd.Context(), opts, nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build pipeline")
	}

	logger.Info().Str("version", Version).Msg("Starting Lambda runtime")
	lambda.Start(handler.Handle)
}
