// Copyright 2025 ZapFS Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/LeeDigitalWorks/zaplambda/pkg/logger"
	"github.com/LeeDigitalWorks/zaplambda/pkg/request"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke",
	Short: "Handle one event from a file or stdin",
	Long: `Decode a single Object Lambda event, run it through the pipeline and print
the runtime result as JSON. With --dry_run the write-back is logged instead
of sent, and the transformed body can be saved with --output.`,
	Run: runInvoke,
}

func init() {
	rootCmd.AddCommand(invokeCmd)
	addPipelineFlags(invokeCmd)

	f := invokeCmd.Flags()
	f.String("event", "-", "Event JSON file ('-' reads stdin)")
	f.String("output", "", "Dry run only: file receiving the transformed body")

	viper.BindPFlags(f)
}

func runInvoke(cmd *cobra.Command, args []string) {
	fl := NewFlagLoader(cmd)
	opts := loadPipelineOpts(cmd)

	ev, err := readEvent(fl.String("event"), cmd.InOrStdin())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to read event")
	}

	var dryRunOut io.Writer
	if path := fl.String("output"); path != "" && opts.DryRun {
		f, err := os.Create(path)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create output file")
		}
		defer f.Close()
		dryRunOut = f
	}

	handler, err := buildHandler(cmd.Context(), opts, dryRunOut)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build pipeline")
	}

	result, err := handler.Handle(cmd.Context(), ev)
	if err != nil {
		logger.Fatal().Err(err).Msg("invocation failed")
	}

	if err := printResult(cmd.OutOrStdout(), result); err != nil {
		logger.Fatal().Err(err).Msg("failed to print result")
	}
}

// readEvent decodes an event from path, or from stdin when path is "-" or
// empty.
func readEvent(path string, stdin io.Reader) (*request.Event, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var ev request.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return &ev, nil
}

func printResult(w io.Writer, result any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
