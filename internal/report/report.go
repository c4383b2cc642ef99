// Package report renders assessment reports and quality metrics from a
// VQL document. Reports are a read-only projection; nothing here mutates
// the store.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/roach88/vql/internal/schema"
)

// AssetMetrics summarizes review coverage and quality for one asset
// reference. Score counts H=3, M=2, L=1 across reviewed principles;
// MaxScore is 3 per principle defined in the document.
type AssetMetrics struct {
	Asset    string            `json:"asset"`
	Path     string            `json:"path"`
	Exemplar bool              `json:"exemplar"`
	Ratings  map[string]string `json:"ratings"`
	Reviewed int               `json:"reviewed"`
	Score    int               `json:"score"`
	MaxScore int               `json:"max_score"`
	Percent  float64           `json:"percent"`
}

// Metrics computes quality metrics for one asset reference against every
// principle in the document.
func Metrics(doc *schema.Document, ref schema.AssetReference) AssetMetrics {
	m := AssetMetrics{
		Asset:    ref.ShortName,
		Path:     ref.Path,
		Exemplar: ref.Exemplar,
		Ratings:  map[string]string{},
		MaxScore: 3 * len(doc.Principles),
	}

	for short, review := range ref.PrincipleReviews {
		if !review.Rating.Valid() {
			continue
		}
		m.Ratings[short] = string(review.Rating)
		m.Reviewed++
		m.Score += review.Rating.Score()
	}
	if m.MaxScore > 0 {
		m.Percent = float64(m.Score) / float64(m.MaxScore) * 100
	}
	return m
}

// Report is the serializable form of a full assessment report.
type Report struct {
	Generated string         `json:"generated"`
	Version   string         `json:"version"`
	Assets    []AssetMetrics `json:"assets"`
}

// Build collects metrics for every asset reference, sorted by identifier.
func Build(doc *schema.Document, now time.Time) Report {
	r := Report{
		Generated: schema.FormatTime(now),
		Version:   doc.Version,
	}

	shorts := make([]string, 0, len(doc.AssetReferences))
	for short := range doc.AssetReferences {
		shorts = append(shorts, short)
	}
	sort.Strings(shorts)

	for _, short := range shorts {
		r.Assets = append(r.Assets, Metrics(doc, doc.AssetReferences[short]))
	}
	return r
}

// JSON renders the report as indented JSON.
func (r Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// Markdown renders the report as a markdown document: a summary table of
// per-asset ratings, optionally followed by the analysis text of every
// review.
func (r Report) Markdown(doc *schema.Document, includeDetails bool) string {
	var b strings.Builder

	b.WriteString("# VQL Assessment Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.Generated)
	b.WriteString("## Quality Assessment Summary\n\n")

	principleShorts := make([]string, 0, len(doc.Principles))
	for short := range doc.Principles {
		principleShorts = append(principleShorts, short)
	}
	sort.Strings(principleShorts)

	b.WriteString("| Asset | Path | Exemplar |")
	for _, short := range principleShorts {
		fmt.Fprintf(&b, " %s |", doc.Principles[short].LongName)
	}
	b.WriteString(" Quality |\n")

	b.WriteString("|-------|------|----------|")
	for range principleShorts {
		b.WriteString("---|")
	}
	b.WriteString("---|\n")

	for _, m := range r.Assets {
		exemplar := "no"
		if m.Exemplar {
			exemplar = "yes"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |", m.Asset, m.Path, exemplar)
		for _, short := range principleShorts {
			rating := m.Ratings[short]
			if rating == "" {
				rating = "?"
			}
			fmt.Fprintf(&b, " %s |", rating)
		}
		fmt.Fprintf(&b, " %.1f%% |\n", m.Percent)
	}

	if includeDetails {
		b.WriteString("\n## Review Details\n")
		for _, m := range r.Assets {
			ref := doc.AssetReferences[m.Asset]
			if len(ref.PrincipleReviews) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n### %s (%s)\n", m.Asset, m.Path)
			for _, short := range principleShorts {
				review, ok := ref.PrincipleReviews[short]
				if !ok {
					continue
				}
				fmt.Fprintf(&b, "\n**%s**: %s\n", doc.Principles[short].LongName, review.Rating.Display())
				if review.Analysis != "" {
					fmt.Fprintf(&b, "\n%s\n", review.Analysis)
				}
			}
		}
	}

	return b.String()
}
