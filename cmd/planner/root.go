package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Commands write to cmd.OutOrStdout so
// tests can capture their output.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "planner",
		Short:         "Render card calendars, planners and letters",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newCalendarCmd(),
		newHTMLCmd(),
		newLetterCmd(),
		newBatchCmd(),
	)
	return root
}

// subjectFlags are shared by the single-subject commands.
type subjectFlags struct {
	name      string
	birthDate string
	year      int
	out       string
}

func (f *subjectFlags) register(cmd *cobra.Command, outUsage string) {
	cmd.Flags().StringVar(&f.name, "name", "", "subject's first name")
	cmd.Flags().StringVar(&f.birthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.out, "out", "", outUsage)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("birth-date")
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
