package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "tizhi",
	Short: "Adaptive constitution self-assessment",
	Long: `tizhi runs an adaptive constitution questionnaire.

Nine core questions are asked of everyone; up to two flagged categories
get follow-up questions. The result is a score per constitution, a
primary classification and, when respondent details are given, regimen
advice.

Run it locally with "tizhi assess", or start the service with
"tizhi start" and drive it over HTTP or MCP.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if os.Getenv("NO_COLOR") != "" {
			noColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.SetVersionTemplate(fmt.Sprintf("tizhi version %s\n", version))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

