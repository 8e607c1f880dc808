package cmd

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/bliss/internal/budget"
	"github.com/theirongolddev/bliss/internal/cli"
	"github.com/theirongolddev/bliss/internal/pipeline"
	"github.com/theirongolddev/bliss/internal/session"
)

var (
	flagPlanExpenses  []string
	flagPlanOverrides []string
	flagPlanCategory  string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the ideal plan for a budget",
	Long: "Builds a session from --budget and --categories, applies any --override and\n" +
		"--expense given, then prints the summary, plan, expense shares and balance trend.",
	Example: "  bliss plan --budget 1000 --categories Food,Transport --override Food=600 --expense Food=300",
	RunE:    runPlan,
}

func init() {
	planCmd.Flags().StringArrayVar(&flagPlanExpenses, "expense", nil, "Record an expense, CATEGORY=AMOUNT (repeatable)")
	planCmd.Flags().StringArrayVar(&flagPlanOverrides, "override", nil, "Pin a category budget, CATEGORY=AMOUNT (repeatable)")
	planCmd.Flags().StringVar(&flagPlanCategory, "category", "", "Only show plan rows matching this substring")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	defer rt.close()

	sess, err := rt.newSession()
	if err != nil {
		return err
	}

	var actions []budget.Action
	for _, raw := range flagPlanOverrides {
		cat, amt, err := parseAssignment("override", raw)
		if err != nil {
			return err
		}
		actions = append(actions, budget.SetOverride{Category: cat, Amount: amt})
	}
	for _, raw := range flagPlanExpenses {
		cat, amt, err := parseAssignment("expense", raw)
		if err != nil {
			return err
		}
		actions = append(actions, budget.RecordExpense{Category: cat, Amount: amt})
	}
	if _, err := sess.DispatchAll(cmd.Context(), actions...); err != nil {
		return err
	}

	printReport(sess, flagPlanCategory)
	return rt.exportJournal(cmd.Context())
}

// parseAssignment splits CATEGORY=AMOUNT.
func parseAssignment(field, raw string) (string, decimal.Decimal, error) {
	cat, amount, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(cat) == "" {
		return "", decimal.Zero, &budget.ValidationError{Field: field, Value: raw, Reason: "want CATEGORY=AMOUNT"}
	}
	amt, err := budget.ParseAmount(field, amount)
	if err != nil {
		return "", decimal.Zero, err
	}
	return strings.TrimSpace(cat), amt, nil
}

// printReport writes the summary, plan, shares, trend and status of sess.
func printReport(sess *session.Session, categoryFilter string) {
	s := sess.State()
	rows := pipeline.FilterByCategory(pipeline.PlanRows(s), categoryFilter)

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET BLISS"))
	fmt.Println()
	fmt.Print(cli.RenderSummary(pipeline.Summarize(s)))
	fmt.Println()
	fmt.Print(cli.RenderPlan(rows))
	fmt.Println()
	fmt.Print(cli.RenderShares(pipeline.ExpenseShares(s)))
	fmt.Println()
	fmt.Print(cli.RenderTrend(pipeline.BalanceSeries(s)))
	fmt.Println()
	if s.ExpenseCount() > 0 {
		fmt.Println("  " + cli.RenderStatus(s.Status()))
		fmt.Println()
	}
}
