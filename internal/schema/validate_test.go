package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalDocument(t *testing.T, doc *Document) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func TestValidateDocumentBytes_FreshDocument(t *testing.T) {
	doc := NewDocument(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
	assert.NoError(t, ValidateDocumentBytes(marshalDocument(t, doc)))
}

func TestValidateDocumentBytes_PopulatedDocument(t *testing.T) {
	doc := NewDocument(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
	ts := doc.LastModified
	doc.Entities["u"] = Entity{ShortName: "u", Description: "User", LastModified: ts}
	doc.AssetTypes["c"] = AssetType{ShortName: "c", Description: "Controller", LastModified: ts}
	doc.AssetReferences["uc"] = AssetReference{
		ShortName:    "uc",
		Entity:       "u",
		AssetType:    "c",
		Path:         "src/user_controller.rb",
		Exemplar:     true,
		LastModified: ts,
		PrincipleReviews: map[string]Review{
			"s": {Rating: RatingMedium, Analysis: "ok", LastModified: ts},
			"a": {Analysis: "unrated notes", LastModified: ts},
		},
	}
	assert.NoError(t, ValidateDocumentBytes(marshalDocument(t, doc)))
}

func TestValidateDocumentBytes_Rejects(t *testing.T) {
	base := func() map[string]any {
		doc := NewDocument(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
		var raw map[string]any
		require.NoError(t, json.Unmarshal(marshalDocument(t, doc), &raw))
		return raw
	}

	tests := []struct {
		name   string
		mutate func(raw map[string]any)
	}{
		{
			name:   "missing version",
			mutate: func(raw map[string]any) { delete(raw, "version") },
		},
		{
			name:   "malformed timestamp",
			mutate: func(raw map[string]any) { raw["last_modified"] = "yesterday" },
		},
		{
			name:   "wrong collection type",
			mutate: func(raw map[string]any) { raw["entities"] = []any{} },
		},
		{
			name: "invalid rating letter",
			mutate: func(raw map[string]any) {
				raw["asset_references"] = map[string]any{
					"uc": map[string]any{
						"short_name":    "uc",
						"entity":        "u",
						"asset_type":    "c",
						"path":          "src/x.rb",
						"exemplar":      false,
						"last_modified": "2024-01-15T10:30:00Z",
						"principle_reviews": map[string]any{
							"s": map[string]any{
								"rating":        "X",
								"last_modified": "2024-01-15T10:30:00Z",
							},
						},
					},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := base()
			tt.mutate(raw)
			data, err := json.Marshal(raw)
			require.NoError(t, err)
			assert.Error(t, ValidateDocumentBytes(data))
		})
	}
}

func TestValidateDocumentBytes_NotJSON(t *testing.T) {
	assert.Error(t, ValidateDocumentBytes([]byte("{truncated")))
}
