package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Veraticus/denials/internal/model"
)

// CodingErrorReply is a well-formed model reply for a coding denial.
const CodingErrorReply = `{"categories":["Coding Error"],"extracted_fields":{"payer":null,"cpt_codes":[],"suggested_action":"Resubmit"}}`

// PriorAuthReply is a well-formed model reply naming a payer and codes.
const PriorAuthReply = `{"categories":["Prior Authorization","Payer Specific Rule"],"extracted_fields":{"payer":"Aetna","cpt_codes":["70553","99214"],"suggested_action":"Request retro authorization"}}`

// Claims returns n claims with ids C1..Cn.
func Claims(n int) []model.ClaimInput {
	claims := make([]model.ClaimInput, n)
	for i := range claims {
		claims[i] = model.ClaimInput{
			ID:         fmt.Sprintf("C%d", i+1),
			DenialNote: fmt.Sprintf("Denied: CPT 9921%d not covered under plan", i%10),
		}
	}
	return claims
}

// SleepRecorder records requested sleeps without waiting.
type SleepRecorder struct {
	delays []time.Duration
	mu     sync.Mutex
}

// Sleep satisfies service.SleepFunc.
func (r *SleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.delays = append(r.delays, d)
	r.mu.Unlock()
	return ctx.Err()
}

// Delays returns the recorded sleeps in order.
func (r *SleepRecorder) Delays() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]time.Duration, len(r.delays))
	copy(out, r.delays)
	return out
}
