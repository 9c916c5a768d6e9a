// Package model defines the core domain models used throughout the application.
package model

import (
	"encoding/json"
	"strings"
)

// ClaimInput is a single denied claim as supplied by the upstream data source.
type ClaimInput struct {
	ID         string `json:"id"`
	DenialNote string `json:"denial_note"`
}

// ExtractedFields holds the structured values pulled out of a denial note.
// Payer and SuggestedAction are nil when the model reported nothing for them.
type ExtractedFields struct {
	Payer           *string  `json:"payer"`
	SuggestedAction *string  `json:"suggested_action"`
	CPTCodes        []string `json:"cpt_codes"`
}

// MarshalJSON keeps the wire order payer, cpt_codes, suggested_action and
// always writes cpt_codes as an array.
func (f ExtractedFields) MarshalJSON() ([]byte, error) {
	codes := f.CPTCodes
	if codes == nil {
		codes = []string{}
	}
	return json.Marshal(struct {
		Payer           *string  `json:"payer"`
		CPTCodes        []string `json:"cpt_codes"`
		SuggestedAction *string  `json:"suggested_action"`
	}{
		Payer:           f.Payer,
		CPTCodes:        codes,
		SuggestedAction: f.SuggestedAction,
	})
}

// Classification is a validated model answer for one denial note.
type Classification struct {
	Categories      []Category      `json:"categories"`
	ExtractedFields ExtractedFields `json:"extracted_fields"`
}

// ClaimOutput is a claim enriched with its classification, or with the reason
// classification failed. A non-empty Error means Categories is empty and
// ExtractedFields is zero.
type ClaimOutput struct {
	ID              string
	DenialNote      string
	Error           string
	Categories      []Category
	ExtractedFields ExtractedFields
}

// NewClaimOutput merges a successful classification onto a copy of claim.
func NewClaimOutput(claim ClaimInput, c Classification) ClaimOutput {
	categories := make([]Category, len(c.Categories))
	copy(categories, c.Categories)

	fields := c.ExtractedFields
	if fields.CPTCodes != nil {
		codes := make([]string, len(fields.CPTCodes))
		copy(codes, fields.CPTCodes)
		fields.CPTCodes = codes
	} else {
		fields.CPTCodes = []string{}
	}

	return ClaimOutput{
		ID:              claim.ID,
		DenialNote:      claim.DenialNote,
		Categories:      categories,
		ExtractedFields: fields,
	}
}

// NewFailedClaimOutput records a classification failure for claim.
func NewFailedClaimOutput(claim ClaimInput, err error) ClaimOutput {
	msg := "unknown error"
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		msg = err.Error()
	}
	return ClaimOutput{
		ID:         claim.ID,
		DenialNote: claim.DenialNote,
		Categories: []Category{},
		Error:      msg,
	}
}

// Failed reports whether classification failed for this claim.
func (o ClaimOutput) Failed() bool {
	return o.Error != ""
}

// Input returns the original claim fields.
func (o ClaimOutput) Input() ClaimInput {
	return ClaimInput{ID: o.ID, DenialNote: o.DenialNote}
}

type claimOutputJSON struct {
	ID              string          `json:"id"`
	DenialNote      string          `json:"denial_note"`
	Categories      []Category      `json:"categories"`
	ExtractedFields json.RawMessage `json:"extracted_fields"`
	Error           string          `json:"error,omitempty"`
}

// MarshalJSON writes failed claims with an empty extracted_fields object.
func (o ClaimOutput) MarshalJSON() ([]byte, error) {
	categories := o.Categories
	if categories == nil {
		categories = []Category{}
	}

	fields := json.RawMessage(`{}`)
	if !o.Failed() {
		raw, err := json.Marshal(o.ExtractedFields)
		if err != nil {
			return nil, err
		}
		fields = raw
	}

	return json.Marshal(claimOutputJSON{
		ID:              o.ID,
		DenialNote:      o.DenialNote,
		Categories:      categories,
		ExtractedFields: fields,
		Error:           o.Error,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (o *ClaimOutput) UnmarshalJSON(data []byte) error {
	var raw claimOutputJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := ClaimOutput{
		ID:         raw.ID,
		DenialNote: raw.DenialNote,
		Categories: raw.Categories,
		Error:      raw.Error,
	}
	if out.Categories == nil {
		out.Categories = []Category{}
	}

	if !out.Failed() && len(raw.ExtractedFields) > 0 && string(raw.ExtractedFields) != "null" {
		if err := json.Unmarshal(raw.ExtractedFields, &out.ExtractedFields); err != nil {
			return err
		}
	}

	*o = out
	return nil
}
