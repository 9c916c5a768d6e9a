package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCategoryIsValid(t *testing.T) {
	tests := []struct {
		category Category
		want     bool
	}{
		{CategoryEligibility, true},
		{CategoryCodingError, true},
		{CategoryPriorAuthorization, true},
		{CategoryIncorrectPatientInfo, true},
		{CategoryPayerSpecificRule, true},
		{CategoryOther, true},
		{Category("coding error"), false},
		{Category("Billing"), false},
		{Category(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.IsValid())
		})
	}
}

func TestAllCategoriesReturnsCopy(t *testing.T) {
	cats := AllCategories()
	require.Len(t, cats, 6)
	assert.Equal(t, CategoryEligibility, cats[0])
	assert.Equal(t, CategoryOther, cats[5])

	cats[0] = "Mutated"
	assert.Equal(t, CategoryEligibility, AllCategories()[0])
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("Prior Authorization")
	require.NoError(t, err)
	assert.Equal(t, CategoryPriorAuthorization, c)

	_, err = ParseCategory("Prior Auth")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Prior Auth")
}

func TestClaimOutputMarshal(t *testing.T) {
	t.Run("successful claim omits error", func(t *testing.T) {
		out := NewClaimOutput(
			ClaimInput{ID: "C1", DenialNote: "CPT code invalid"},
			Classification{
				Categories: []Category{CategoryCodingError},
				ExtractedFields: ExtractedFields{
					CPTCodes:        []string{},
					SuggestedAction: strPtr("Resubmit"),
				},
			},
		)

		data, err := json.Marshal(out)
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"id":"C1","denial_note":"CPT code invalid","categories":["Coding Error"],"extracted_fields":{"payer":null,"cpt_codes":[],"suggested_action":"Resubmit"}}`,
			string(data))
		assert.Equal(t,
			`{"id":"C1","denial_note":"CPT code invalid","categories":["Coding Error"],"extracted_fields":{"payer":null,"cpt_codes":[],"suggested_action":"Resubmit"}}`,
			string(data))
	})

	t.Run("failed claim has empty categories and fields", func(t *testing.T) {
		out := NewFailedClaimOutput(ClaimInput{ID: "C2", DenialNote: "note"}, errors.New("boom"))

		data, err := json.Marshal(out)
		require.NoError(t, err)
		assert.Equal(t,
			`{"id":"C2","denial_note":"note","categories":[],"extracted_fields":{},"error":"boom"}`,
			string(data))
		assert.True(t, out.Failed())
	})

	t.Run("nil cpt codes written as array", func(t *testing.T) {
		data, err := json.Marshal(ExtractedFields{Payer: strPtr("Aetna")})
		require.NoError(t, err)
		assert.Equal(t, `{"payer":"Aetna","cpt_codes":[],"suggested_action":null}`, string(data))
	})
}

func TestNewClaimOutputCopiesSlices(t *testing.T) {
	codes := []string{"99213"}
	cats := []Category{CategoryEligibility, CategoryOther}
	out := NewClaimOutput(ClaimInput{ID: "C1", DenialNote: "n"}, Classification{
		Categories:      cats,
		ExtractedFields: ExtractedFields{CPTCodes: codes},
	})

	codes[0] = "changed"
	cats[0] = CategoryCodingError

	assert.Equal(t, []string{"99213"}, out.ExtractedFields.CPTCodes)
	assert.Equal(t, []Category{CategoryEligibility, CategoryOther}, out.Categories)
	assert.Empty(t, out.Error)
}

func TestNewFailedClaimOutputNilError(t *testing.T) {
	out := NewFailedClaimOutput(ClaimInput{ID: "C1", DenialNote: "n"}, nil)
	assert.Equal(t, "unknown error", out.Error)
	assert.Equal(t, ClaimInput{ID: "C1", DenialNote: "n"}, out.Input())
}

func TestClaimOutputRoundTrip(t *testing.T) {
	outputs := []ClaimOutput{
		NewClaimOutput(ClaimInput{ID: "A", DenialNote: "Missing auth for 99215"}, Classification{
			Categories: []Category{CategoryPriorAuthorization, CategoryPayerSpecificRule},
			ExtractedFields: ExtractedFields{
				Payer:           strPtr("UnitedHealthcare"),
				CPTCodes:        []string{"99215"},
				SuggestedAction: strPtr("Obtain retro auth"),
			},
		}),
		NewFailedClaimOutput(ClaimInput{ID: "B", DenialNote: "???"}, errors.New("failed to classify claim B: bad")),
	}

	data, err := json.MarshalIndent(outputs, "", "  ")
	require.NoError(t, err)

	var decoded []ClaimOutput
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, outputs, decoded)
}
