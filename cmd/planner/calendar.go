package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/analogalgo/letters/internal/planner"
)

func newCalendarCmd() *cobra.Command {
	var f subjectFlags
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Write a subject's 364-day calendar as JSON",
		Example: `  planner calendar --name Cassidy --birth-date 1991-02-17 --year 2026
  planner calendar --name Cassidy --birth-date 1991-02-17 --year 2026 --out cassidy.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := buildPlanner(f)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), f.out, p)
		},
	}
	f.register(cmd, "output file (default stdout)")
	cmd.Flags().IntVar(&f.year, "year", time.Now().Year(), "target year")
	return cmd
}

func newHTMLCmd() *cobra.Command {
	var f subjectFlags
	cmd := &cobra.Command{
		Use:     "html",
		Short:   "Write a subject's printable planner as HTML",
		Example: `  planner html --name Cassidy --birth-date 1991-02-17 --year 2026 --out planner.html`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := buildPlanner(f)
			if err != nil {
				return err
			}
			if err := writePlannerHTML(f.out, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d pages to %s\n", len(p.Days), f.out)
			return nil
		},
	}
	f.register(cmd, "output HTML file")
	cmd.Flags().IntVar(&f.year, "year", time.Now().Year(), "target year")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func buildPlanner(f subjectFlags) (planner.Planner, error) {
	birth, err := planner.ParseBirthDate(f.birthDate)
	if err != nil {
		return planner.Planner{}, err
	}
	return planner.Build(f.name, birth, f.year)
}

func writePlannerHTML(path string, p planner.Planner) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return planner.RenderHTML(file, p)
}
