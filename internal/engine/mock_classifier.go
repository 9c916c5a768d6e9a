package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/Veraticus/denials/internal/common"
	"github.com/Veraticus/denials/internal/model"
)

// MockClassifier is a test implementation of service.ClaimClassifier.
// Claims listed in Failures fail with a classification error; all others get
// the same classification.
type MockClassifier struct {
	Failures       map[string]error
	OnCall         func(claim model.ClaimInput)
	Classification model.Classification
	calls          []model.ClaimInput
	mu             sync.Mutex
}

// NewMockClassifier creates a mock that tags every claim with category.
func NewMockClassifier(category model.Category) *MockClassifier {
	return &MockClassifier{
		Failures: make(map[string]error),
		Classification: model.Classification{
			Categories:      []model.Category{category},
			ExtractedFields: model.ExtractedFields{CPTCodes: []string{}},
		},
	}
}

// FailOn makes the mock fail for id with cause.
func (m *MockClassifier) FailOn(id string, cause error) *MockClassifier {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cause == nil {
		cause = errors.New("mock failure")
	}
	m.Failures[id] = cause
	return m
}

// ClassifyClaim implements service.ClaimClassifier.
func (m *MockClassifier) ClassifyClaim(ctx context.Context, claim model.ClaimInput) (model.ClaimOutput, error) {
	m.mu.Lock()
	m.calls = append(m.calls, claim)
	cause, fail := m.Failures[claim.ID]
	onCall := m.OnCall
	m.mu.Unlock()

	if onCall != nil {
		onCall(claim)
	}
	if err := ctx.Err(); err != nil {
		return model.ClaimOutput{}, err
	}
	if fail {
		return model.ClaimOutput{}, common.NewClassificationError(claim.ID, cause)
	}
	return model.NewClaimOutput(claim, m.Classification), nil
}

// Calls returns the claims seen so far, in order.
func (m *MockClassifier) Calls() []model.ClaimInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ClaimInput, len(m.calls))
	copy(out, m.calls)
	return out
}
