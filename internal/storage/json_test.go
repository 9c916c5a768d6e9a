package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/denials/internal/common"
	"github.com/Veraticus/denials/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadClaims(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
		want    []model.ClaimInput
	}{
		{
			name:    "valid file",
			content: `[{"id":"C1","denial_note":"CPT code invalid"},{"id":"C2","denial_note":"Eligibility lapsed","extra":true}]`,
			want: []model.ClaimInput{
				{ID: "C1", DenialNote: "CPT code invalid"},
				{ID: "C2", DenialNote: "Eligibility lapsed"},
			},
		},
		{
			name:    "empty array",
			content: `[]`,
			want:    []model.ClaimInput{},
		},
		{
			name:    "duplicate ids allowed",
			content: `[{"id":"C1","denial_note":"a"},{"id":"C1","denial_note":"b"}]`,
			want: []model.ClaimInput{
				{ID: "C1", DenialNote: "a"},
				{ID: "C1", DenialNote: "b"},
			},
		},
		{name: "not json", content: `id,denial_note`, wantMsg: "input is not valid JSON"},
		{name: "object root", content: `{"id":"C1","denial_note":"x"}`, wantMsg: "input must be a JSON array of claims"},
		{name: "non-object element", content: `[{"id":"C1","denial_note":"x"},"C2"]`, wantMsg: "invalid claim at index 1: record must be a JSON object"},
		{name: "missing id", content: `[{"denial_note":"x"}]`, wantMsg: "invalid claim at index 0: missing required field: id"},
		{name: "numeric id", content: `[{"id":7,"denial_note":"x"}]`, wantMsg: "id must be a string"},
		{name: "blank note", content: `[{"id":"C1","denial_note":"   "}]`, wantMsg: "string field cannot be empty: denial_note"},
		{name: "null note", content: `[{"id":"C1","denial_note":null}]`, wantMsg: "denial_note must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "claims.json", tt.content)
			got, err := LoadClaims(path)
			if tt.wantMsg != "" {
				require.Error(t, err)
				assert.True(t, common.HasKind(err, common.KindInput))
				assert.Contains(t, err.Error(), tt.wantMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadClaims_MissingFile(t *testing.T) {
	_, err := LoadClaims(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, common.HasKind(err, common.KindInput))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriteResults(t *testing.T) {
	payer := "Aetna"
	results := []model.ClaimOutput{
		model.NewClaimOutput(model.ClaimInput{ID: "C1", DenialNote: "CPT code invalid"}, model.Classification{
			Categories:      []model.Category{model.CategoryCodingError},
			ExtractedFields: model.ExtractedFields{Payer: &payer, CPTCodes: []string{"99213"}},
		}),
		model.NewFailedClaimOutput(model.ClaimInput{ID: "C2", DenialNote: "x"}, errors.New("failed to classify claim C2: boom")),
	}

	path := filepath.Join(t.TempDir(), "nested", "dir", "out.json")
	require.NoError(t, WriteResults(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `[
  {
    "id": "C1",
    "denial_note": "CPT code invalid",
    "categories": [
      "Coding Error"
    ],
    "extracted_fields": {
      "payer": "Aetna",
      "cpt_codes": [
        "99213"
      ],
      "suggested_action": null
    }
  },
  {
    "id": "C2",
    "denial_note": "x",
    "categories": [],
    "extracted_fields": {},
    "error": "failed to classify claim C2: boom"
  }
]
`
	assert.Equal(t, want, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	readBack, err := ReadResults(path)
	require.NoError(t, err)
	assert.Equal(t, results, readBack)
}

func TestWriteResults_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteResults(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteResults_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := WriteResults(filepath.Join(blocker, "out.json"), nil)
	require.Error(t, err)
	assert.Equal(t, common.KindOutput, common.KindOf(err))
}
