package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"placement-directory/pkg/fixture"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <fixture>",
		Short: "Check a fixture against the company schema and record rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, err := fixture.FormatFromPath(path)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			doc, result, err := fixture.Inspect(data, format)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range result.Errors {
				fmt.Fprintf(out, "ERROR   %s [%s] %s\n", e.Field, e.Code, e.Message)
			}
			for _, w := range result.Warnings {
				fmt.Fprintf(out, "WARNING %s [%s] %s\n", w.Field, w.Code, w.Message)
			}
			if !result.Valid {
				return fmt.Errorf("%s: %d validation errors", path, len(result.Errors))
			}

			fmt.Fprintf(out, "OK: %s (%d companies, %d warnings)\n", path, len(doc.Companies), len(result.Warnings))
			return nil
		},
	}
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Rewrite a fixture as JSON or YAML, chosen by the output extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := fixture.Load(args[0])
			if err != nil {
				return err
			}
			format, err := fixture.FormatFromPath(args[1])
			if err != nil {
				return err
			}
			data, err := fixture.Encode(doc, format)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d companies to %s\n", len(doc.Companies), args[1])
			return nil
		},
	}
}
