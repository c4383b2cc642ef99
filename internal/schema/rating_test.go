package schema

import "testing"

func TestExtractRating(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Rating
	}{
		{
			name: "explicit high compliance",
			text: "The error handling here shows HIGH compliance with the guidance.",
			want: RatingHigh,
		},
		{
			name: "explicit colon form",
			text: "Summary. Compliance: low. Needs a rewrite of the auth check.",
			want: RatingLow,
		},
		{
			name: "bare mention with trailing space",
			text: "Overall this file is rated as medium for this principle.",
			want: RatingMedium,
		},
		{
			name: "bare mention with trailing period",
			text: "I would rate this as high.",
			want: RatingHigh,
		},
		{
			name: "bare mention with trailing comma",
			text: "This scores low, mostly due to the blocking calls.",
			want: RatingLow,
		},
		{
			name: "case insensitive",
			text: "MEDIUM COMPLIANCE overall.",
			want: RatingMedium,
		},
		{
			name: "explicit beats bare even when bare comes first",
			text: "The low latency path is solid. Overall: high compliance.",
			want: RatingHigh,
		},
		{
			name: "earliest mention wins within a tier",
			text: "This shows high compliance despite low compliance in one corner.",
			want: RatingHigh,
		},
		{
			name: "word boundary rejects highlight",
			text: "The highlight of this file is its clarity.",
			want: "",
		},
		{
			name: "word boundary rejects lowercase",
			text: "Uses lowercase identifiers throughout.",
			want: "",
		},
		{
			name: "no level mentioned",
			text: "Well structured, clear naming, good separation of concerns.",
			want: "",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractRating(tt.text)
			if got != tt.want {
				t.Errorf("ExtractRating(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseRating(t *testing.T) {
	for _, in := range []string{"H", "h"} {
		r, err := ParseRating(in)
		if err != nil || r != RatingHigh {
			t.Errorf("ParseRating(%q) = %q, %v; want H", in, r, err)
		}
	}
	if _, err := ParseRating("X"); err == nil {
		t.Error("ParseRating(X) should fail")
	}
	if _, err := ParseRating(""); err == nil {
		t.Error("ParseRating of empty string should fail")
	}
}

func TestRatingScoreAndDisplay(t *testing.T) {
	tests := []struct {
		rating  Rating
		score   int
		display string
	}{
		{RatingHigh, 3, "High"},
		{RatingMedium, 2, "Medium"},
		{RatingLow, 1, "Low"},
		{"", 0, "Unreviewed"},
	}
	for _, tt := range tests {
		if got := tt.rating.Score(); got != tt.score {
			t.Errorf("Score(%q) = %d, want %d", tt.rating, got, tt.score)
		}
		if got := tt.rating.Display(); got != tt.display {
			t.Errorf("Display(%q) = %q, want %q", tt.rating, got, tt.display)
		}
	}
}
