package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/26nm/careerpath/internal/config"
	"github.com/26nm/careerpath/internal/domain/matching"
	"github.com/26nm/careerpath/internal/infrastructure/textextract"

	"github.com/spf13/cobra"
)

type analyzeOptions struct {
	resumeFile  string
	jobFile     string
	weightsFile string
	diagnostics bool
}

type analyzeOutput struct {
	matching.MatchReport
	Signals []matching.SkillSignal `json:"signals,omitempty"`
	Scores  map[string]int         `json:"scores,omitempty"`
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compare a resume with a job description",
		Long:  "Extract text from a resume and a job description (pdf, docx, html, txt or md) and print the match report as JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.resumeFile, "resume", "", "Path to the resume file")
	cmd.Flags().StringVar(&opts.jobFile, "job", "", "Path to the job description file")
	cmd.Flags().StringVar(&opts.weightsFile, "weights", "", "YAML file with scoring weights")
	cmd.Flags().BoolVar(&opts.diagnostics, "diagnostics", false, "Include skill signals and the score map")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	weights, err := config.LoadScoring(opts.weightsFile)
	if err != nil {
		return err
	}

	resumeText, err := readDocument(opts.resumeFile)
	if err != nil {
		return err
	}
	jobText, err := readDocument(opts.jobFile)
	if err != nil {
		return err
	}

	res := matching.NewEngine(weights).Analyze(resumeText, jobText)
	out := analyzeOutput{MatchReport: res.Report}
	if opts.diagnostics {
		out.Signals = res.Scoring.Signals
		out.Scores = res.Scoring.Scores
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// readDocument extracts text by file extension. Files with an unknown
// extension are read as plain text.
func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	name := path
	if _, err := textextract.Detect(path, ""); err != nil {
		name = filepath.Base(path) + ".txt"
	}
	text, err := textextract.Extract(name, "", data)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	return text, nil
}
