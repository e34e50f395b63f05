package main

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kalambet/tizhi/internal/api"
	"github.com/kalambet/tizhi/internal/assessment"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Drive an assessment on the running server",
	Long: `Drive an assessment on the running server one step at a time.

Examples:
  tizhi session start --gender male --age 45 --province 黑龙江
  tizhi session answer <id> 4
  tizhi session back <id>
  tizhi session result <id>`,
}

var sessionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		respondent, err := respondentFromFlags(cmd)
		if err != nil {
			return err
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/assessments", api.StartRequest{Respondent: respondent})
		if err != nil {
			return err
		}
		var snap assessment.Snapshot
		if err := decodeJSON(resp, &snap); err != nil {
			return err
		}

		printSuccess("Started assessment %s", snap.ID)
		printQuestion(cmd.OutOrStdout(), snap)
		return nil
	},
}

var sessionAnswerCmd = &cobra.Command{
	Use:   "answer <id> <value>",
	Short: "Answer the current question (1-5)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("value must be a number from 1 to 5, got %q", args[1])
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), assessmentPath(args[0], "answers"), api.AnswerRequest{Value: &value})
		if err != nil {
			return err
		}
		var snap assessment.Snapshot
		if err := decodeJSON(resp, &snap); err != nil {
			return err
		}
		printProgress(cmd, snap)
		return nil
	},
}

var sessionBackCmd = &cobra.Command{
	Use:   "back <id>",
	Short: "Return to the previous question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), assessmentPath(args[0], "back"), nil)
		if err != nil {
			return err
		}
		var snap assessment.Snapshot
		if err := decodeJSON(resp, &snap); err != nil {
			return err
		}
		printProgress(cmd, snap)
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the current question and progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), assessmentPath(args[0], ""))
		if err != nil {
			return err
		}
		var snap assessment.Snapshot
		if err := decodeJSON(resp, &snap); err != nil {
			return err
		}

		printStatus("ID", "%s", snap.ID)
		printStatus("Status", "%s", snap.Status)
		printStatus("Answered", "%d of %d (%d%%)", snap.Answered, snap.Total, snap.Progress)
		if snap.Respondent != nil {
			printStatus("Respondent", "%s", snap.Respondent.Summary())
		}
		printQuestion(cmd.OutOrStdout(), snap)
		return nil
	},
}

var sessionResultCmd = &cobra.Command{
	Use:   "result <id>",
	Short: "Show the result of a completed assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), assessmentPath(args[0], "result"))
		if err != nil {
			return err
		}
		var rep assessment.Report
		if err := decodeJSON(resp, &rep); err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd.OutOrStdout(), rep)
		}
		printReport(cmd.OutOrStdout(), rep)
		return nil
	},
}

var sessionAbandonCmd = &cobra.Command{
	Use:   "abandon <id>",
	Short: "Discard an assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete(cmd.Context(), assessmentPath(args[0], ""))
		if err != nil {
			return err
		}
		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}
		printSuccess("Abandoned assessment %s", args[0])
		return nil
	},
}

func init() {
	addRespondentFlags(sessionStartCmd)
	sessionResultCmd.Flags().Bool("json", false, "print the result as JSON")

	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionAnswerCmd)
	sessionCmd.AddCommand(sessionBackCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionResultCmd)
	sessionCmd.AddCommand(sessionAbandonCmd)
}

func assessmentPath(id, action string) string {
	p := "/assessments/" + url.PathEscape(id)
	if action != "" {
		p += "/" + action
	}
	return p
}

func printProgress(cmd *cobra.Command, snap assessment.Snapshot) {
	if snap.Status == assessment.StatusCompleted {
		printSuccess("Assessment complete after %d questions; run: tizhi session result %s", snap.Answered, snap.ID)
		return
	}
	printQuestion(cmd.OutOrStdout(), snap)
}
