package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalambet/tizhi/internal/assessment"
	"github.com/kalambet/tizhi/internal/profile"
	"github.com/kalambet/tizhi/internal/questionnaire"
)

var errAborted = errors.New("assessment aborted")

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Take the questionnaire in the terminal",
	Long: `Take the questionnaire in the terminal without a running server.

Answer each question with 1 (never) to 5 (always). Type "b" or "back"
to revisit the previous question and "q" to quit.

Examples:
  tizhi assess
  tizhi assess --gender female --age 28 --province 四川 --city 成都市`,
	RunE: func(cmd *cobra.Command, args []string) error {
		respondent, err := respondentFromFlags(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		registry, err := assessment.NewRegistry(questionnaire.Default(), assessment.Options{
			MaxActive: 1,
			Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		})
		if err != nil {
			return err
		}

		rep, err := runAssessment(cmd.InOrStdin(), cmd.OutOrStdout(), registry, respondent)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), rep)
		}
		printReport(cmd.OutOrStdout(), rep)
		return nil
	},
}

func init() {
	addRespondentFlags(assessCmd)
	assessCmd.Flags().Bool("json", false, "print the result as JSON")
}

func addRespondentFlags(cmd *cobra.Command) {
	cmd.Flags().String("gender", "", "male or female")
	cmd.Flags().Int("age", 0, "age in years")
	cmd.Flags().String("province", "", "province of residence, e.g. 四川")
	cmd.Flags().String("city", "", "city of residence")
}

// respondentFromFlags returns nil when no respondent flag was set.
func respondentFromFlags(cmd *cobra.Command) (*profile.Respondent, error) {
	fields := map[string]string{}
	for _, name := range []string{"gender", "age", "province", "city"} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			fields[name] = f.Value.String()
		}
	}
	if len(fields) == 0 {
		return nil, nil
	}
	r, err := profile.FromFields(fields)
	if err != nil {
		return nil, fmt.Errorf("invalid respondent: %w", err)
	}
	return &r, nil
}

// runAssessment drives one assessment from line-oriented input until it
// completes, the user quits, or input ends.
func runAssessment(in io.Reader, out io.Writer, registry *assessment.Registry, respondent *profile.Respondent) (assessment.Report, error) {
	snap, err := registry.Start(respondent)
	if err != nil {
		return assessment.Report{}, err
	}
	if respondent != nil {
		fmt.Fprintf(out, "%s\n\n", respondent.Summary())
	}

	scanner := bufio.NewScanner(in)
	for snap.Status != assessment.StatusCompleted {
		printQuestion(out, snap)
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return assessment.Report{}, err
			}
			return assessment.Report{}, fmt.Errorf("input ended after %d of %d questions", snap.Answered, snap.Total)
		}

		switch line := strings.ToLower(strings.TrimSpace(scanner.Text())); line {
		case "":
			continue
		case "q", "quit":
			registry.Abandon(snap.ID)
			return assessment.Report{}, errAborted
		case "b", "back":
			if snap.Position == 1 {
				fmt.Fprintln(out, colorize(colorYellow, "Already at the first question."))
				continue
			}
			snap, err = registry.Back(snap.ID)
		default:
			v, convErr := strconv.Atoi(line)
			if convErr != nil {
				fmt.Fprintf(out, "%s\n", colorize(colorYellow, fmt.Sprintf("Enter %d-%d, b to go back or q to quit.", questionnaire.MinValue, questionnaire.MaxValue)))
				continue
			}
			next, answerErr := registry.Answer(snap.ID, v)
			if errors.Is(answerErr, questionnaire.ErrInvalidAnswerValue) {
				fmt.Fprintf(out, "%s\n", colorize(colorYellow, fmt.Sprintf("Answers range from %d to %d.", questionnaire.MinValue, questionnaire.MaxValue)))
				continue
			}
			snap, err = next, answerErr
		}
		if err != nil {
			return assessment.Report{}, err
		}
		fmt.Fprintln(out)
	}

	return registry.Result(snap.ID)
}

func printQuestion(out io.Writer, snap assessment.Snapshot) {
	q := snap.Question
	if q == nil {
		return
	}
	fmt.Fprintf(out, "%s %s\n", colorize(colorCyan, fmt.Sprintf("[%d/%d]", snap.Position, snap.Total)), colorize(colorBold, q.Text))
	opts := make([]string, len(snap.Options))
	for i, o := range snap.Options {
		label := fmt.Sprintf("%d %s", o.Value, o.Label)
		if o.Value == snap.Answer {
			label = colorize(colorGreen, label+"*")
		}
		opts[i] = label
	}
	fmt.Fprintf(out, "  %s\n", strings.Join(opts, "  "))
}

func printReport(out io.Writer, rep assessment.Report) {
	fmt.Fprintf(out, "%s %s (%s)\n\n", colorize(colorBold, "Primary constitution:"), rep.PrimaryLabel, rep.Primary)
	for _, cs := range rep.Ranking {
		line := fmt.Sprintf("  %s %s %5.1f", cs.Label, scoreBar(cs.Score), cs.Score)
		if cs.Category == rep.Primary {
			line = colorize(colorGreen, line)
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "\n  %d questions answered\n", rep.Answered)
	if rep.Advice != nil {
		fmt.Fprintf(out, "\n%s\n", rep.Advice.Text)
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
