package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/denials/internal/model"
	"github.com/Veraticus/denials/internal/service"
)

func TestRenderSummary(t *testing.T) {
	tests := []struct {
		name        string
		summary     service.RunSummary
		outputPath  string
		expected    []string
		notExpected []string
	}{
		{
			name: "mixed run",
			summary: service.RunSummary{
				Total:     3,
				Succeeded: 2,
				Failed:    1,
				Duration:  1500 * time.Millisecond,
				CategoryCounts: map[model.Category]int{
					model.CategoryCodingError:        1,
					model.CategoryPriorAuthorization: 2,
				},
				PayerCounts: map[string]int{"Aetna": 1, "Unknown": 1},
				FailedIDs:   []string{"C2"},
			},
			outputPath: "out.json",
			expected: []string{
				"Classification Complete",
				"Claims processed: 3",
				"Coding Error",
				"Prior Authorization",
				"Aetna",
				"Unknown",
				"Failed claims",
				"C2",
				"Written to out.json",
			},
			notExpected: []string{"Eligibility"},
		},
		{
			name: "empty run",
			summary: service.RunSummary{
				CategoryCounts: map[model.Category]int{},
				PayerCounts:    map[string]int{},
			},
			expected:    []string{"Claims processed: 0", "Failed: 0"},
			notExpected: []string{"Categories", "Payers", "Failed claims", "Written to"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderSummary(tt.summary, tt.outputPath)
			for _, e := range tt.expected {
				assert.Contains(t, out, e)
			}
			for _, ne := range tt.notExpected {
				assert.NotContains(t, out, ne)
			}
		})
	}
}

func TestSortedPayers(t *testing.T) {
	got := sortedPayers(map[string]int{"Cigna": 1, "Aetna": 3, "BCBS": 1})
	assert.Equal(t, []string{"Aetna", "BCBS", "Cigna"}, got)
}

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, 3)

	bar.Report(1, 3)
	bar.Report(2, 3)
	bar.Report(3, 3)
	bar.Finish()

	out := buf.String()
	assert.Contains(t, out, "Classifying claims")
	assert.True(t, strings.Contains(out, "3/3"), "expected final count in %q", out)
}

func TestProgressBar_FinishEarly(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, 4)
	bar.Report(1, 4)
	assert.NotPanics(t, bar.Finish)
	assert.NotPanics(t, bar.Finish)
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("done"), "done")
	assert.Contains(t, FormatError("bad"), ErrorIcon)
	assert.Contains(t, FormatWarning("careful"), "careful")
	assert.Contains(t, FormatInfo("note"), "note")
	assert.Contains(t, FormatTitle("Denials"), "Denials")
	assert.Contains(t, RenderBox("Title", "body"), "body")
}
