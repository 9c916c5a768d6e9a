package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/denials/internal/model"
	"github.com/Veraticus/denials/internal/service"
)

// RenderSummary formats a run summary as a box for the terminal.
func RenderSummary(s service.RunSummary, outputPath string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s Results:\n", ChartIcon)
	fmt.Fprintf(&b, "  • Claims processed: %d\n", s.Total)
	fmt.Fprintf(&b, "  • Classified: %s\n", SuccessStyle.Render(fmt.Sprint(s.Succeeded)))
	if s.Failed > 0 {
		fmt.Fprintf(&b, "  • Failed: %s\n", ErrorStyle.Render(fmt.Sprint(s.Failed)))
	} else {
		fmt.Fprintf(&b, "  • Failed: %d\n", s.Failed)
	}
	fmt.Fprintf(&b, "  • Time taken: %s\n", s.Duration.Round(time.Millisecond))

	if len(s.CategoryCounts) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Categories") + "\n")
		for _, c := range model.AllCategories() {
			if n := s.CategoryCounts[c]; n > 0 {
				fmt.Fprintf(&b, "  %-26s %d\n", c, n)
			}
		}
	}

	if len(s.PayerCounts) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Payers") + "\n")
		for _, payer := range sortedPayers(s.PayerCounts) {
			fmt.Fprintf(&b, "  %-26s %d\n", payer, s.PayerCounts[payer])
		}
	}

	if len(s.FailedIDs) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Failed claims") + "\n")
		b.WriteString("  " + ErrorStyle.Render(strings.Join(s.FailedIDs, ", ")) + "\n")
	}

	if outputPath != "" {
		b.WriteString("\n" + SubtleStyle.Render("Written to "+outputPath))
	}

	return RenderBox("Classification Complete", strings.TrimRight(b.String(), "\n"))
}

// sortedPayers orders payers by count descending, then name.
func sortedPayers(counts map[string]int) []string {
	payers := make([]string, 0, len(counts))
	for p := range counts {
		payers = append(payers, p)
	}
	sort.Slice(payers, func(i, j int) bool {
		if counts[payers[i]] != counts[payers[j]] {
			return counts[payers[i]] > counts[payers[j]]
		}
		return payers[i] < payers[j]
	})
	return payers
}
