// Command constraintsim evaluates a warehouse facility snapshot against
// the fixed screening rule set.
//
// Exit codes: 0 QUALIFIED, 2 DISQUALIFIED, 3 UNKNOWN, 1 unexpected error.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/boringai/constraintsim/engine"
	"github.com/boringai/constraintsim/facility"
)

func main() {
	rootCmd := newRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "constraintsim",
		Short:         "Evaluate warehouse facility eligibility for the empty tote return task",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newEvaluateCommand())
	root.AddCommand(newRulesCommand())

	return root
}

func newEvaluateCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "evaluate <facility-file>",
		Short: "Evaluate a facility snapshot JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read facility file: %w", err)
			}

			var raw map[string]any
			if err := json.Unmarshal(data, &raw); err != nil {
				return fmt.Errorf("invalid JSON in %s: %w", args[0], err)
			}

			en, err := engine.New()
			if err != nil {
				return fmt.Errorf("failed to create engine: %w", err)
			}

			result, err := en.Evaluate(raw)
			if err != nil {
				return fmt.Errorf("evaluation failed: %w", err)
			}

			if jsonOutput {
				if err := printJSONReport(result); err != nil {
					return err
				}
			} else {
				printReport(result)
			}

			os.Exit(exitCode(result.Verdict))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the evaluation result as JSON")

	return cmd
}

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the fixed screening rule tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("DISQUALIFIER RULES (%d):\n", len(engine.DisqualifierRules))
			for _, r := range engine.DisqualifierRules {
				fmt.Printf("  %s\n    when: %s\n    reason: %s\n", r.ID, r.Expression, r.Reason)
			}
			fmt.Println()
			fmt.Printf("CAUTION FLAG RULES (%d):\n", len(engine.CautionFlagRules))
			for _, r := range engine.CautionFlagRules {
				fmt.Printf("  %s\n    when: %s\n    reason: %s\n", r.ID, r.Expression, r.Reason)
			}
			return nil
		},
	}
}

// exitCode maps a verdict to the process exit code contract.
func exitCode(verdict facility.Verdict) int {
	switch verdict {
	case facility.VerdictQualified:
		return 0
	case facility.VerdictDisqualified:
		return 2
	case facility.VerdictUnknown:
		return 3
	default:
		return 1
	}
}

func printJSONReport(result *facility.EvaluationResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

func printReport(result *facility.EvaluationResult) {
	divider := strings.Repeat("=", 70)

	fmt.Println(divider)
	fmt.Println("CONSTRAINT SIMULATOR - EVALUATION REPORT")
	fmt.Println(divider)
	fmt.Println()

	fmt.Printf("VERDICT: %s %s\n\n", verdictMarker(result.Verdict), result.Verdict)

	if len(result.Disqualifiers) > 0 {
		fmt.Printf("DISQUALIFIERS (%d):\n", len(result.Disqualifiers))
		for _, id := range result.Disqualifiers {
			fmt.Printf("  - %s\n", id)
		}
		fmt.Println()
	}

	if len(result.CautionFlags) > 0 {
		fmt.Printf("CAUTION FLAGS (%d):\n", len(result.CautionFlags))
		for _, id := range result.CautionFlags {
			fmt.Printf("  - %s\n", id)
		}
		fmt.Println()
	}

	if len(result.MissingFields) > 0 {
		fmt.Printf("MISSING/INVALID FIELDS (%d):\n", len(result.MissingFields))
		for _, field := range result.MissingFields {
			fmt.Printf("  - %s\n", field)
		}
		fmt.Println()
	}

	if len(result.Notes) > 0 {
		fmt.Println("EVALUATION NOTES:")
		for _, note := range result.Notes {
			fmt.Printf("  %s\n", note)
		}
		fmt.Println()
	}

	fmt.Println(divider)
}

func verdictMarker(verdict facility.Verdict) string {
	switch verdict {
	case facility.VerdictQualified:
		return color.GreenString("✓")
	case facility.VerdictDisqualified:
		return color.RedString("✗")
	default:
		return color.YellowString("?")
	}
}
