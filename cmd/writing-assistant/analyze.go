package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/ingest"
	"github.com/Muzammil-Ahm3d/Local-Writing-Assistant/internal/tone"
)

var detailed bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze the tone of a local document",
	Long: `Loads a document (.txt, .md, .pdf, or .docx), runs the heuristic tone
analysis, and prints the report as JSON. Fully offline.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := ingest.Load(args[0])
		if err != nil {
			return err
		}

		analysis := tone.NewAnalyzer().Analyze(doc.Text)

		report := map[string]any{
			"document": map[string]string{
				"name":   doc.Name,
				"path":   doc.SourcePath,
				"format": doc.Format,
			},
			"labels": map[string]string{
				"sentiment": string(analysis.Sentiment),
				"formality": string(analysis.Formality),
			},
			"scores": map[string]float64{
				"sentiment": analysis.Scores.Sentiment,
				"formality": analysis.Scores.Formality,
			},
			"confidence": analysis.Confidence,
		}
		if detailed {
			report["features"] = analysis.MarshalFeatures()
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&detailed, "detailed", false, "include the extracted feature vector")
}
