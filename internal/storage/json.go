package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/denials/internal/common"
	"github.com/Veraticus/denials/internal/model"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// LoadClaims reads and validates the claims input file. Any malformed record
// fails the whole load, naming its index. Duplicate ids are only logged.
func LoadClaims(path string) ([]model.ClaimInput, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided and resolved by the caller
	if err != nil {
		return nil, common.NewInputError(fmt.Sprintf("failed to read input file %s", path), err)
	}

	claims, err := ParseClaims(data)
	if err != nil {
		return nil, err
	}

	if dups := DuplicateIDs(claims); len(dups) > 0 {
		slog.Warn("Input contains duplicate claim ids",
			"path", path,
			"ids", dups)
	}

	return claims, nil
}

// ParseClaims decodes an input document: a JSON array of claim objects.
func ParseClaims(data []byte) ([]model.ClaimInput, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, common.NewInputError("input is not valid JSON", err)
	}

	items, ok := root.([]any)
	if !ok {
		return nil, common.NewInputError("input must be a JSON array of claims", nil)
	}

	claims := make([]model.ClaimInput, 0, len(items))
	for i, item := range items {
		claim, err := validateClaimRecord(item)
		if err != nil {
			return nil, common.NewInputError(fmt.Sprintf("invalid claim at index %d", i), err)
		}
		claims = append(claims, claim)
	}

	return claims, nil
}

// WriteResults writes results as an indented JSON array, creating parent
// directories as needed.
func WriteResults(path string, results []model.ClaimOutput) error {
	if results == nil {
		results = []model.ClaimOutput{}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return common.NewOutputError("failed to encode results", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return common.NewOutputError(fmt.Sprintf("failed to create output directory for %s", path), err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return common.NewOutputError(fmt.Sprintf("failed to write output file %s", path), err)
	}

	slog.Debug("Wrote results", "path", path, "claims", len(results))
	return nil
}

// ReadResults loads a file previously produced by WriteResults.
func ReadResults(path string) ([]model.ClaimOutput, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided and resolved by the caller
	if err != nil {
		return nil, common.NewInputError(fmt.Sprintf("failed to read results file %s", path), err)
	}

	var results []model.ClaimOutput
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, common.NewInputError("results file is not a valid JSON array of claims", err)
	}
	if results == nil {
		results = []model.ClaimOutput{}
	}
	return results, nil
}
