// Command atscore scores resume files against an optional job description.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "atscore",
	Short:         "Score resumes the way an applicant tracking system would",
	Long:          "atscore extracts text from pdf, docx, doc and txt resumes and reports an ATS compatibility score with keyword, section, formatting and readability findings.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
