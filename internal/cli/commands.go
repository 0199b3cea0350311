package cli

import (
	"errors"
	"fmt"
	"os"

	"splittimer/internal/export"
	"splittimer/internal/storage"

	"github.com/spf13/cobra"
)

func newSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <export.json>",
		Short: "Print an exported run as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := export.Read(args[0])
			if err != nil {
				return err
			}
			return export.WriteTable(cmd.OutOrStdout(), snapshot)
		},
	}
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <run-file>",
		Short: "Check a run file without opening the timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := storage.LoadRun(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d splits\n", def.Title, len(def.Splits))
			for index, name := range def.Splits {
				fmt.Fprintf(out, "  %d. %s\n", index+1, name)
			}
			fmt.Fprintf(out, "warning: %s\n", describeLimit(def.Thresholds.Warning.Enabled, def.Thresholds.Warning.After.Seconds()))
			fmt.Fprintf(out, "bad: %s\n", describeLimit(def.Thresholds.Bad.Enabled, def.Thresholds.Bad.After.Seconds()))
			return nil
		},
	}
}

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <run-file>",
		Short: "Write a template run file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("check %s: %w", path, err)
				}
			}
			if err := storage.SaveRun(path, storage.TemplateRun()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func describeLimit(enabled bool, seconds float64) string {
	if !enabled {
		return "off"
	}
	return fmt.Sprintf("after %gs", seconds)
}
