package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalambet/tizhi/internal/questionnaire"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the question bank",
	Long: `List the question bank in asking order.

Examples:
  tizhi questions --tier core
  tizhi questions --category qi_deficiency`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tierFlag, _ := cmd.Flags().GetString("tier")
		categoryFlag, _ := cmd.Flags().GetString("category")

		qs, err := questionnaire.Default().Filter(tierFlag, categoryFlag)
		if err != nil {
			return err
		}
		if len(qs) == 0 {
			printWarning("no questions match")
			return nil
		}
		printQuestionTable(cmd.OutOrStdout(), qs)
		return nil
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Resolve the primary constitution from scores",
	Long: `Resolve the primary constitution from a set of 0-100 scores.
Categories left out score 0.

Example:
  tizhi classify --scores balanced=72,qi_deficiency=25,damp_heat=18`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("scores")
		if raw == "" {
			return fmt.Errorf("--scores is required")
		}
		scores, err := parseScores(raw)
		if err != nil {
			return err
		}

		primary := questionnaire.ResolvePrimary(scores)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s (%s)\n\n", colorize(colorBold, "Primary constitution:"), primary.Label(), primary)
		for _, cs := range questionnaire.Rank(scores) {
			fmt.Fprintf(out, "  %s %s %5.1f\n", cs.Label, scoreBar(cs.Score), cs.Score)
		}
		return nil
	},
}

func init() {
	questionsCmd.Flags().String("tier", "", "core or follow_up")
	questionsCmd.Flags().String("category", "", "category name or label, e.g. damp_heat or 湿热质")
	classifyCmd.Flags().String("scores", "", "comma-separated category=score pairs")
}

func printQuestionTable(out io.Writer, qs []questionnaire.Question) {
	for _, q := range qs {
		fmt.Fprintf(out, "  %-30s %-9s %s  %s\n", q.ID, q.Tier, q.Category.Label(), q.Text)
	}
}

// parseScores reads "name=score" pairs. Names may be category names or
// labels.
func parseScores(raw string) (questionnaire.ScoreMap, error) {
	var m questionnaire.ScoreMap
	seen := map[questionnaire.Category]bool{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, val, ok := strings.Cut(pair, "=")
		if !ok {
			return m, fmt.Errorf("invalid score %q: want category=score", pair)
		}
		c, err := questionnaire.ParseCategory(name)
		if err != nil {
			return m, err
		}
		if seen[c] {
			return m, fmt.Errorf("duplicate score for %s", c)
		}
		seen[c] = true
		s, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return m, fmt.Errorf("invalid score for %s: %w", c, err)
		}
		if err := questionnaire.CheckScore(c, s); err != nil {
			return m, err
		}
		m[c] = s
	}
	return m, nil
}
