package engine

import (
	"github.com/Veraticus/denials/internal/model"
	"github.com/Veraticus/denials/internal/service"
)

// UnknownPayer labels claims whose reply carried no payer.
const UnknownPayer = "Unknown"

// Summarize aggregates counts over a finished batch. Failed claims are counted
// only in the failure totals.
func Summarize(results []model.ClaimOutput) service.RunSummary {
	summary := service.RunSummary{
		CategoryCounts: make(map[model.Category]int),
		PayerCounts:    make(map[string]int),
		FailedIDs:      []string{},
		Total:          len(results),
	}

	for _, r := range results {
		if r.Failed() {
			summary.Failed++
			summary.FailedIDs = append(summary.FailedIDs, r.ID)
			continue
		}

		summary.Succeeded++
		for _, c := range r.Categories {
			summary.CategoryCounts[c]++
		}

		payer := UnknownPayer
		if p := r.ExtractedFields.Payer; p != nil && *p != "" {
			payer = *p
		}
		summary.PayerCounts[payer]++
	}

	return summary
}
