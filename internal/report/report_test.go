package report

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vql/internal/schema"
)

func fixtureDocument() *schema.Document {
	doc := schema.NewDocument(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
	ts := doc.LastModified

	doc.Entities["u"] = schema.Entity{ShortName: "u", Description: "User", LastModified: ts}
	doc.AssetTypes["c"] = schema.AssetType{ShortName: "c", Description: "Controller", LastModified: ts}

	doc.AssetReferences["uc"] = schema.AssetReference{
		ShortName:    "uc",
		Entity:       "u",
		AssetType:    "c",
		Path:         "src/user_controller.rb",
		Exemplar:     true,
		LastModified: ts,
		PrincipleReviews: map[string]schema.Review{
			"a": {Rating: schema.RatingHigh, Analysis: "Layering is clean and dependencies point inward.", LastModified: ts},
			"p": {Analysis: "No load testing performed yet.", LastModified: ts},
			"s": {Rating: schema.RatingHigh, Analysis: "Auth checks present on every route.", LastModified: ts},
		},
	}
	doc.AssetReferences["um"] = schema.AssetReference{
		ShortName:    "um",
		Entity:       "u",
		AssetType:    "c",
		Path:         "src/user_model.rb",
		LastModified: ts,
		PrincipleReviews: map[string]schema.Review{
			"a": {Rating: schema.RatingMedium, Analysis: "Model mixes persistence and validation concerns.", LastModified: ts},
			"s": {Rating: schema.RatingLow, Analysis: "Raw string interpolation in one query.", LastModified: ts},
		},
	}
	return doc
}

func TestMetrics(t *testing.T) {
	doc := fixtureDocument()

	m := Metrics(doc, doc.AssetReferences["uc"])
	assert.Equal(t, "uc", m.Asset)
	assert.True(t, m.Exemplar)
	assert.Equal(t, 2, m.Reviewed, "unrated reviews do not count as reviewed")
	assert.Equal(t, 6, m.Score)
	assert.Equal(t, 12, m.MaxScore, "3 points per principle across 4 principles")
	assert.InDelta(t, 50.0, m.Percent, 0.0001)
	assert.Equal(t, map[string]string{"a": "H", "s": "H"}, m.Ratings)

	m = Metrics(doc, doc.AssetReferences["um"])
	assert.Equal(t, 3, m.Score)
	assert.InDelta(t, 25.0, m.Percent, 0.0001)
}

func TestMetricsNoPrinciples(t *testing.T) {
	doc := fixtureDocument()
	doc.Principles = map[string]schema.Principle{}

	m := Metrics(doc, doc.AssetReferences["um"])
	assert.Equal(t, 0, m.MaxScore)
	assert.Zero(t, m.Percent, "no principles must not divide by zero")
}

func TestBuildOrdersAssets(t *testing.T) {
	doc := fixtureDocument()
	r := Build(doc, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, r.Assets, 2)
	assert.Equal(t, "uc", r.Assets[0].Asset)
	assert.Equal(t, "um", r.Assets[1].Asset)
	assert.Equal(t, "2024-02-01T00:00:00Z", r.Generated)
	assert.Equal(t, schema.Version, r.Version)
}

func TestBuildEmptyDocument(t *testing.T) {
	doc := schema.NewDocument(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
	r := Build(doc, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, r.Assets)

	md := r.Markdown(doc, true)
	assert.Contains(t, md, "## Quality Assessment Summary")
}

func TestMarkdownGolden(t *testing.T) {
	doc := fixtureDocument()
	r := Build(doc, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "report_details", []byte(r.Markdown(doc, true)))
	g.Assert(t, "report_summary", []byte(r.Markdown(doc, false)))
}

func TestJSONGolden(t *testing.T) {
	doc := fixtureDocument()
	r := Build(doc, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	data, err := r.JSON()
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "report_json", data)
}
