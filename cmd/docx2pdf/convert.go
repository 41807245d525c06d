// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docx2pdf/internal/convert"
	"github.com/pdiddy/docx2pdf/internal/driver"
	"github.com/pdiddy/docx2pdf/internal/logger"
	"github.com/pdiddy/docx2pdf/internal/progress"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

func runConvert(cmd *cobra.Command, args []string, cfg types.Config, convertOpts []convert.Option) error {
	input := args[0]
	var output string
	if len(args) > 1 {
		output = args[1]
	}

	switch cfg.Report {
	case types.ReportNone, types.ReportYAML, types.ReportJSON, "":
	default:
		return fmt.Errorf("%w: unknown report format %q (want none, yaml or json)", types.ErrInvalidArgument, cfg.Report)
	}

	log := logger.New(&logger.Config{
		Level:      cfg.LogLevel,
		Output:     cmd.ErrOrStderr(),
		JSON:       cfg.LogJSON,
		TimeFormat: "15:04:05",
	})
	rep, err := progress.Select(cfg.Progress, cmd.ErrOrStderr(), log)
	if err != nil {
		return err
	}

	conv := convert.New(driver.Config{Word: cfg.Word, Helper: cfg.Helper, Logger: log}, convertOpts...)
	res, err := conv.Convert(cmd.Context(), input, output, convert.Options{KeepActive: cfg.KeepActive, Reporter: rep})
	if rerr := writeReport(cmd.OutOrStdout(), cfg.Report, res); rerr != nil {
		log.Error("writing report", "err", rerr)
	}
	return err
}

// writeReport prints res on w in the requested format.
func writeReport(w io.Writer, format types.ReportFormat, res types.Result) error {
	switch format {
	case types.ReportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return enc.Close()
	case types.ReportJSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return nil
	}
}
