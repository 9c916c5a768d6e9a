// Package storage reads claim input files and writes classification results.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/denials/internal/model"
)

// Validation errors.
var (
	ErrEmptyString   = errors.New("string field cannot be empty")
	ErrMissingField  = errors.New("missing required field")
	ErrWrongType     = errors.New("field has wrong type")
	ErrInvalidRecord = errors.New("record must be a JSON object")
)

// validateString ensures a string field is not blank.
func validateString(s string, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, fieldName)
	}
	return nil
}

// stringField pulls a required non-blank string out of a decoded record.
func stringField(record map[string]any, fieldName string) (string, error) {
	raw, ok := record[fieldName]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, fieldName)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrWrongType, fieldName)
	}
	if err := validateString(s, fieldName); err != nil {
		return "", err
	}
	return s, nil
}

// validateClaimRecord converts one decoded element of the input array.
func validateClaimRecord(raw any) (model.ClaimInput, error) {
	record, ok := raw.(map[string]any)
	if !ok {
		return model.ClaimInput{}, ErrInvalidRecord
	}

	id, err := stringField(record, "id")
	if err != nil {
		return model.ClaimInput{}, err
	}
	note, err := stringField(record, "denial_note")
	if err != nil {
		return model.ClaimInput{}, err
	}

	return model.ClaimInput{ID: id, DenialNote: note}, nil
}

// ValidateClaims checks already-typed claims, e.g. ones built in code.
func ValidateClaims(claims []model.ClaimInput) error {
	for i, c := range claims {
		if err := validateString(c.ID, "id"); err != nil {
			return fmt.Errorf("claim at index %d: %w", i, err)
		}
		if err := validateString(c.DenialNote, "denial_note"); err != nil {
			return fmt.Errorf("claim at index %d: %w", i, err)
		}
	}
	return nil
}

// DuplicateIDs returns ids that appear more than once, in order of first repeat.
func DuplicateIDs(claims []model.ClaimInput) []string {
	seen := make(map[string]int, len(claims))
	var dups []string
	for _, c := range claims {
		seen[c.ID]++
		if seen[c.ID] == 2 {
			dups = append(dups, c.ID)
		}
	}
	return dups
}
