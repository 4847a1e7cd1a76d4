package engine

import (
	"fmt"
	"strings"
)

// Report renders a deterministic plain-text summary of the outcome. Request
// id and timestamp are deliberately excluded so identical inputs produce
// identical reports.
func (o *Outcome) Report() string {
	var b strings.Builder

	b.WriteString("LOAN QUALIFICATION REPORT\n")
	b.WriteString("=========================\n\n")

	fmt.Fprintf(&b, "Overall Status: %s\n", o.Qualification.Status)
	fmt.Fprintf(&b, "Routing: %s\n", o.Qualification.Routing)
	fmt.Fprintf(&b, "Underwriting: %s (%s)\n\n", o.Underwriting.Recommendation, o.Underwriting.State)

	b.WriteString("Financial Metrics\n")
	fmt.Fprintf(&b, "  LTV: %.1f%%\n", o.Metrics.LTVPct)
	fmt.Fprintf(&b, "  Down Payment: %.1f%%\n", o.Metrics.DownPaymentPct)
	fmt.Fprintf(&b, "  Front-End DTI: %.1f%%\n", o.Metrics.FrontEndDTIPct)
	fmt.Fprintf(&b, "  Back-End DTI: %.1f%%\n", o.Metrics.BackEndDTIPct)
	fmt.Fprintf(&b, "  Qualifying Income: $%.2f/mo (%s stability)\n", o.Income.QualifyingIncome, o.Income.Stability)
	fmt.Fprintf(&b, "  Reserves: %.1f months\n\n", o.Metrics.ReserveMonthsAvailable)

	fmt.Fprintf(&b, "Credit Risk: %s (%s)\n", o.Credit.Tier, o.Credit.ScoreTier)
	for _, r := range o.Credit.Reasons {
		fmt.Fprintf(&b, "  - %s\n", r)
	}
	b.WriteString("\n")

	b.WriteString("Program Evaluations\n")
	for _, p := range o.Programs {
		marker := " "
		if o.Recommended != nil && p.ProgramID == o.Recommended.ProgramID {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %-14s %-20s score %5.1f  %s\n", marker, p.ProgramID, p.Status, p.Score, p.Band)
		for _, issue := range p.Issues {
			fmt.Fprintf(&b, "      issue: %s\n", issue)
		}
	}
	if o.Rationale != "" {
		fmt.Fprintf(&b, "\nRecommendation: %s\n", o.Rationale)
	}

	if len(o.CriticalIssues) > 0 {
		b.WriteString("\nCritical Issues\n")
		for _, issue := range o.CriticalIssues {
			fmt.Fprintf(&b, "  - %s\n", issue)
		}
	}
	if len(o.Warnings) > 0 {
		b.WriteString("\nWarnings\n")
		for _, w := range o.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	if len(o.Underwriting.Conditions) > 0 {
		b.WriteString("\nApproval Conditions\n")
		for _, c := range o.Underwriting.Conditions {
			fmt.Fprintf(&b, "  - %s\n", c)
		}
	}
	if len(o.Underwriting.Reasons) > 0 {
		b.WriteString("\nDecision Reasons\n")
		for _, r := range o.Underwriting.Reasons {
			fmt.Fprintf(&b, "  - %s\n", r)
		}
	}

	return b.String()
}
