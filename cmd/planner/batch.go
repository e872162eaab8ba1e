package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// batchFile is the YAML layout read by the batch command.
//
//	year: 2026
//	subjects:
//	  - name: Cassidy
//	    birth_date: 1991-02-17
//	  - name: Ren
//	    birth_date: 1988-11-02
//	    year: 2027
type batchFile struct {
	Year     int            `yaml:"year"`
	Subjects []batchSubject `yaml:"subjects"`
}

type batchSubject struct {
	Name      string `yaml:"name"`
	BirthDate string `yaml:"birth_date"`
	Year      int    `yaml:"year"`
}

func newBatchCmd() *cobra.Command {
	var (
		file        string
		outDir      string
		concurrency int
	)
	cmd := &cobra.Command{
		Use:     "batch",
		Short:   "Render HTML planners for every subject in a YAML file",
		Example: `  planner batch --file subjects.yaml --out-dir planners --concurrency 4`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			batch, err := readBatchFile(file)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", outDir, err)
			}

			paths, err := renderBatch(cmd, batch, outDir, concurrency)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML file listing subjects")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for the HTML planners")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "planners rendered in parallel")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readBatchFile(path string) (batchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return batchFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	var batch batchFile
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return batchFile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(batch.Subjects) == 0 {
		return batchFile{}, fmt.Errorf("%s lists no subjects", path)
	}
	if batch.Year == 0 {
		batch.Year = time.Now().Year()
	}
	return batch, nil
}

// renderBatch writes one planner per subject and returns the written paths in
// subject order. Subjects that would share an output file are rejected before
// anything is written. The first failure cancels the remaining work.
func renderBatch(cmd *cobra.Command, batch batchFile, outDir string, concurrency int) ([]string, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	paths, err := batchPaths(batch, outDir)
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(concurrency)
	for i, s := range batch.Subjects {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := buildPlanner(subjectFlags{name: s.Name, birthDate: s.BirthDate, year: subjectYear(batch, s)})
			if err != nil {
				return fmt.Errorf("subject %d (%s): %w", i+1, s.Name, err)
			}
			if err := writePlannerHTML(paths[i], p); err != nil {
				return fmt.Errorf("subject %d (%s): %w", i+1, s.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// batchPaths resolves the output file of every subject and fails when two
// subjects resolve to the same file.
func batchPaths(batch batchFile, outDir string) ([]string, error) {
	paths := make([]string, len(batch.Subjects))
	seen := make(map[string]int, len(batch.Subjects))
	for i, s := range batch.Subjects {
		path := filepath.Join(outDir, plannerFileName(s.Name, s.BirthDate, subjectYear(batch, s)))
		if first, ok := seen[path]; ok {
			return nil, fmt.Errorf("subjects %d and %d (%s) both write %s", first+1, i+1, s.Name, path)
		}
		seen[path] = i
		paths[i] = path
	}
	return paths, nil
}

func subjectYear(batch batchFile, s batchSubject) int {
	if s.Year != 0 {
		return s.Year
	}
	return batch.Year
}

// plannerFileName returns a filesystem-safe name such as
// "planner_cassidy_1991-02-17_2026.html".
func plannerFileName(name, birthDate string, year int) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		case r == ' ' || r == '-' || r == '_':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(name))
	if slug == "" {
		slug = "subject"
	}
	date := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '-' {
			return r
		}
		return -1
	}, birthDate)
	if date == "" {
		return fmt.Sprintf("planner_%s_%d.html", slug, year)
	}
	return fmt.Sprintf("planner_%s_%s_%d.html", slug, date, year)
}
