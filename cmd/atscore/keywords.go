package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"resume-ats/internal/ats"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Print the keywords a resume is matched against",
	Long:  "Print the terms extracted from a job description. With --all the baseline keyword set is included, in scoring order.",
	Args:  cobra.NoArgs,
	RunE:  runKeywords,
}

var (
	keywordsJDFile string
	keywordsAll    bool
)

func init() {
	keywordsCmd.Flags().StringVar(&keywordsJDFile, "jd", "", "Path to a job description text file")
	keywordsCmd.Flags().BoolVar(&keywordsAll, "all", false, "Include the baseline keyword set")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	if keywordsJDFile == "" && !keywordsAll {
		return fmt.Errorf("--jd is required unless --all is set")
	}
	jd, err := readJobDescription(keywordsJDFile)
	if err != nil {
		return err
	}

	terms := ats.ExtractJobKeywords(jd)
	if keywordsAll {
		terms = ats.CandidateKeywords(jd)
	}
	if len(terms) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "no keywords found")
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(terms, "\n"))
	return err
}
