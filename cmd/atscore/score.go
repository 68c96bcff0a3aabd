package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"resume-ats/internal/ats"
	"resume-ats/internal/extract"
	"resume-ats/internal/report"
)

var scoreCmd = &cobra.Command{
	Use:   "score <file>...",
	Short: "Score one or more resume files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScore,
}

var (
	scoreJDFile      string
	scoreFormat      string
	scoreWeights     string
	scoreConcurrency int
)

func init() {
	scoreCmd.Flags().StringVar(&scoreJDFile, "jd", "", "Path to a job description text file")
	scoreCmd.Flags().StringVarP(&scoreFormat, "format", "f", "text", "Output format: json, yaml or text")
	scoreCmd.Flags().StringVar(&scoreWeights, "weights", "canonical", "Weighting scheme: canonical or legacy")
	scoreCmd.Flags().IntVarP(&scoreConcurrency, "concurrency", "c", 4, "Files scored in parallel")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(scoreFormat)
	if err != nil {
		return err
	}
	weights, err := ats.ParseWeights(scoreWeights)
	if err != nil {
		return err
	}
	engine, err := ats.NewEngine(weights)
	if err != nil {
		return err
	}
	jd, err := readJobDescription(scoreJDFile)
	if err != nil {
		return err
	}

	entries := scoreFiles(cmd.Context(), engine, args, jd, scoreConcurrency)
	if err := report.Write(cmd.OutOrStdout(), format, entries); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	failed := 0
	for _, e := range entries {
		if e.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be scored", failed, len(entries))
	}
	return nil
}

// scoreFiles keeps input order; a file that fails is reported in its entry
// rather than aborting the batch.
func scoreFiles(ctx context.Context, engine *ats.Engine, paths []string, jd string, concurrency int) []report.Entry {
	if ctx == nil {
		ctx = context.Background()
	}
	entries := make([]report.Entry, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, concurrency))
	for i, path := range paths {
		g.Go(func() error {
			entries[i] = report.Entry{File: path}
			analysis, err := scoreFile(gCtx, engine, path, jd)
			if err != nil {
				entries[i].Error = err.Error()
				return nil
			}
			entries[i].Analysis = &analysis
			return nil
		})
	}
	_ = g.Wait()
	return entries
}

func scoreFile(ctx context.Context, engine *ats.Engine, path, jd string) (ats.ResumeAnalysis, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ats.ResumeAnalysis{}, err
	}
	if info.Size() > extract.MaxInputBytes {
		return ats.ResumeAnalysis{}, fmt.Errorf("file exceeds %d bytes", extract.MaxInputBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ats.ResumeAnalysis{}, err
	}
	fileType, err := extract.DetectFileType(filepath.Base(path), mimetype.Detect(data).String())
	if err != nil {
		return ats.ResumeAnalysis{}, err
	}
	text, err := extract.FromBytes(ctx, data, fileType)
	if err != nil {
		return ats.ResumeAnalysis{}, err
	}
	return engine.Analyze(text, jd), nil
}

func readJobDescription(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}
	return string(data), nil
}
