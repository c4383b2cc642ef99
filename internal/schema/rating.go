package schema

import "strings"

// ratingPattern is one textual form that implies a rating level.
type ratingPattern struct {
	substr string
	rating Rating
}

// Explicit compliance statements, checked before bare level mentions.
var explicitPatterns = []ratingPattern{
	{"high compliance", RatingHigh},
	{"compliance: high", RatingHigh},
	{"medium compliance", RatingMedium},
	{"compliance: medium", RatingMedium},
	{"low compliance", RatingLow},
	{"compliance: low", RatingLow},
}

// Bare level mentions such as "rated as HIGH." require a leading space
// and a space, period, or comma after, so words like "highlight" do not
// match.
var bareMentionPatterns = []ratingPattern{
	{" high ", RatingHigh},
	{" high.", RatingHigh},
	{" high,", RatingHigh},
	{" medium ", RatingMedium},
	{" medium.", RatingMedium},
	{" medium,", RatingMedium},
	{" low ", RatingLow},
	{" low.", RatingLow},
	{" low,", RatingLow},
}

// ExtractRating infers a compliance rating from free-text review content.
//
// The search is case-insensitive. Explicit compliance statements ("HIGH
// compliance", "compliance: low") are preferred over bare level mentions.
// Within a tier, when more than one level appears, the earliest mention
// in the text wins: the convention is that the author states the rating
// once, near the top. No match returns the zero Rating, which is a
// valid outcome, not an error.
func ExtractRating(text string) Rating {
	lower := strings.ToLower(text)
	if r := earliestMatch(lower, explicitPatterns); r.Valid() {
		return r
	}
	return earliestMatch(lower, bareMentionPatterns)
}

// earliestMatch returns the rating whose pattern occurs first in text,
// or the zero Rating when no pattern matches.
func earliestMatch(text string, patterns []ratingPattern) Rating {
	best := -1
	var rating Rating
	for _, p := range patterns {
		idx := strings.Index(text, p.substr)
		if idx < 0 {
			continue
		}
		if best < 0 || idx < best {
			best = idx
			rating = p.rating
		}
	}
	return rating
}
