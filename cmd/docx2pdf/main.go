// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docx2pdf CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docx2pdf/internal/convert"
	"github.com/pdiddy/docx2pdf/internal/version"
	"github.com/pdiddy/docx2pdf/pkg/types"
)

const longHelp = `docx2pdf converts Word documents to PDF by driving an installed Microsoft
Word (COM automation on Windows, JXA through osascript on macOS).

Example Usage:

Convert single docx file in-place from myfile.docx to myfile.pdf:
    docx2pdf myfile.docx

Batch convert docx folder in-place. Output PDFs will go in the same folder:
    docx2pdf myfolder/

Convert single docx file with explicit output filepath:
    docx2pdf input.docx output.pdf

Convert single docx file and output to a different explicit folder:
    docx2pdf input.docx output_dir/

Batch convert docx folder. Output PDFs will go to a different explicit folder:
    docx2pdf input_dir/ output_dir/`

// newRootCmd builds the docx2pdf command. convertOpts are passed to every
// convert.Converter the command creates.
func newRootCmd(convertOpts ...convert.Option) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "docx2pdf <input> [output]",
		Short:         "Convert Word documents to PDF with Microsoft Word",
		Long:          longHelp,
		Args:          cobra.MaximumNArgs(2),
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runConvert(cmd, args, readConfig(v), convertOpts)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.Flags()
	flags.Bool("keep-active", false, "prevent closing word after conversion")
	flags.String("config", "", "config file (default: ./docx2pdf.yaml or ~/.config/docx2pdf/docx2pdf.yaml)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.Bool("log-json", false, "write logs as JSON lines")
	flags.String("progress", string(types.ProgressAuto), "progress display: auto, bar, log or none")
	flags.String("report", string(types.ReportNone), "print a run summary on stdout: none, yaml or json")
	flags.String("helper-command", types.DefaultHelperCommand, "interpreter command line for the macOS helper script")
	flags.String("helper-script", "", "helper script replacing the built-in JXA script")
	flags.String("word-prog-id", types.DefaultWordProgID, "COM ProgID of Word on Windows")

	bindings := map[string]string{
		"keep_active":    "keep-active",
		"log_level":      "log-level",
		"log_json":       "log-json",
		"progress":       "progress",
		"report":         "report",
		"helper.command": "helper-command",
		"helper.script":  "helper-script",
		"word.prog_id":   "word-prog-id",
	}
	for key, flag := range bindings {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	return cmd
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("docx2pdf")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "docx2pdf"))
		}
	}

	v.SetEnvPrefix("DOCX2PDF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	return nil
}

func readConfig(v *viper.Viper) types.Config {
	return types.Config{
		KeepActive: v.GetBool("keep_active"),
		LogLevel:   v.GetString("log_level"),
		LogJSON:    v.GetBool("log_json"),
		Progress:   types.ProgressMode(v.GetString("progress")),
		Report:     types.ReportFormat(v.GetString("report")),
		Helper: types.HelperConfig{
			Command: v.GetString("helper.command"),
			Script:  v.GetString("helper.script"),
		},
		Word: types.WordConfig{
			ProgID: v.GetString("word.prog_id"),
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes the single diagnostic for a failed run.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "docx2pdf:", err)
	if errors.Is(err, types.ErrApplicationUnavailable) {
		fmt.Fprintln(w, "Microsoft Word could not be launched. Install Microsoft Word and try again.")
	}
}
