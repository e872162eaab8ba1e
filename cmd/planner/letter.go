package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/analogalgo/letters/internal/domain/cardology"
	"github.com/analogalgo/letters/internal/narrative"
	"github.com/analogalgo/letters/internal/pdf"
	"github.com/analogalgo/letters/internal/planner"
)

func newLetterCmd() *cobra.Command {
	var (
		f      subjectFlags
		target string
	)
	cmd := &cobra.Command{
		Use:   "letter",
		Short: "Print the engine reading for a letter, optionally rendering the PDF",
		Example: `  planner letter --name Cassidy --birth-date 1991-02-17 --target 2026-03-15
  planner letter --name Cassidy --birth-date 1991-02-17 --target 2026-03-15 --out letter.pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			birth, err := planner.ParseBirthDate(f.birthDate)
			if err != nil {
				return err
			}
			result := cardology.CalculateLetterData(f.name, birth.Year(), int(birth.Month()), birth.Day(), target)
			if !result.OK() {
				return errors.New(result.Error)
			}
			if err := writeJSON(cmd.OutOrStdout(), "", result); err != nil {
				return err
			}
			if f.out == "" {
				return nil
			}
			return writeLetterPDF(f.out, f.name, result.LetterData, target)
		},
	}
	f.register(cmd, "write the letter PDF to this file")
	cmd.Flags().StringVar(&target, "target", time.Now().Format(cardology.DateLayout), "target date (YYYY-MM-DD)")
	return cmd
}

func writeLetterPDF(path, name string, data *cardology.LetterData, target string) (err error) {
	targetDate, err := time.Parse(cardology.DateLayout, target)
	if err != nil {
		return fmt.Errorf("target date %q is not YYYY-MM-DD: %w", target, err)
	}
	composer, err := narrative.NewComposer()
	if err != nil {
		return err
	}
	letter, err := composer.Compose(name, data, targetDate)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return pdf.NewRenderer("").Render(file, letter)
}
