package schema

import (
	"fmt"
	"time"
)

// Version is the schema version written into new documents.
const Version = "1.0.0"

// TimeFormat is the timestamp encoding used everywhere in the document:
// ISO 8601, second precision, literal Z suffix.
const TimeFormat = "2006-01-02T15:04:05Z"

// FormatTime renders a time in the document's timestamp encoding (UTC).
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// ParseTime parses a document timestamp.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeFormat, s)
}

// Kind identifies which collection a short identifier lives in.
type Kind string

const (
	KindPrinciple      Kind = "principle"
	KindEntity         Kind = "entity"
	KindAssetType      Kind = "asset_type"
	KindAssetReference Kind = "asset_reference"
)

// Rating is a three-valued compliance level. The zero value means
// "not yet reviewed" and is distinct from all three levels.
type Rating string

const (
	RatingHigh   Rating = "H"
	RatingMedium Rating = "M"
	RatingLow    Rating = "L"
)

// Valid reports whether r is one of the three rating levels.
// The zero value is not valid: absence is modeled by the empty string,
// which is omitted from JSON entirely.
func (r Rating) Valid() bool {
	return r == RatingHigh || r == RatingMedium || r == RatingLow
}

// Score converts a rating to a numeric quality score (H=3, M=2, L=1).
// An absent rating scores zero.
func (r Rating) Score() int {
	switch r {
	case RatingHigh:
		return 3
	case RatingMedium:
		return 2
	case RatingLow:
		return 1
	default:
		return 0
	}
}

// Display returns the human-readable name of the rating level.
func (r Rating) Display() string {
	switch r {
	case RatingHigh:
		return "High"
	case RatingMedium:
		return "Medium"
	case RatingLow:
		return "Low"
	default:
		return "Unreviewed"
	}
}

// ParseRating parses a user-supplied rating letter, accepting lower case.
func ParseRating(s string) (Rating, error) {
	switch s {
	case "H", "h":
		return RatingHigh, nil
	case "M", "m":
		return RatingMedium, nil
	case "L", "l":
		return RatingLow, nil
	default:
		return "", fmt.Errorf("invalid rating %q: must be H, M, or L", s)
	}
}

// Principle is a named quality criterion assets are reviewed against.
type Principle struct {
	ShortName    string `json:"short_name"`
	LongName     string `json:"long_name"`
	Guidance     string `json:"guidance,omitempty"`
	LastModified string `json:"last_modified"`
}

// Entity is a business/domain concept used to classify tracked files.
type Entity struct {
	ShortName    string `json:"short_name"`
	Description  string `json:"description"`
	LastModified string `json:"last_modified"`
}

// AssetType is a category of code artifact (controller, model, ...).
type AssetType struct {
	ShortName    string `json:"short_name"`
	Description  string `json:"description"`
	LastModified string `json:"last_modified"`
}

// Review is one principle's evaluation of one asset reference.
// Rating may be absent: a review can record analysis before it is scored.
type Review struct {
	Rating       Rating `json:"rating,omitempty"`
	Analysis     string `json:"analysis,omitempty"`
	LastModified string `json:"last_modified"`
}

// AssetReference is a tracked file, linked to one entity and one asset
// type, with a map of per-principle reviews. By convention the short name
// concatenates the entity and asset type identifiers, but only the
// unified namespace rule is enforced.
type AssetReference struct {
	ShortName        string            `json:"short_name"`
	Entity           string            `json:"entity"`
	AssetType        string            `json:"asset_type"`
	Path             string            `json:"path"`
	Exemplar         bool              `json:"exemplar"`
	LastModified     string            `json:"last_modified"`
	PrincipleReviews map[string]Review `json:"principle_reviews,omitempty"`
}

// CommandRecord describes one entry in the document's command registry.
// The registry is seeded at setup and carried opaquely; mutations never
// interpret it.
type CommandRecord struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	BuiltIn      bool   `json:"built_in"`
	LastModified string `json:"last_modified"`
}

// Document is the root aggregate persisted as vql_storage.json.
// Collections are keyed by short identifier.
type Document struct {
	Version         string                    `json:"version"`
	Created         string                    `json:"created"`
	LastModified    string                    `json:"last_modified"`
	Commands        map[string]CommandRecord  `json:"commands"`
	AssetTypes      map[string]AssetType      `json:"asset_types"`
	Entities        map[string]Entity         `json:"entities"`
	Principles      map[string]Principle      `json:"principles,omitempty"`
	AssetReferences map[string]AssetReference `json:"asset_references"`
}

// NewDocument synthesizes a fresh document: empty collections, the
// built-in command registry, and the four default review principles.
func NewDocument(now time.Time) *Document {
	ts := FormatTime(now)

	commands := map[string]CommandRecord{}
	for name, desc := range builtinCommands {
		commands[name] = CommandRecord{
			Name:         name,
			Description:  desc,
			BuiltIn:      true,
			LastModified: ts,
		}
	}

	principles := map[string]Principle{}
	for short, p := range defaultPrinciples {
		principles[short] = Principle{
			ShortName:    short,
			LongName:     p.long,
			Guidance:     p.guidance,
			LastModified: ts,
		}
	}

	return &Document{
		Version:         Version,
		Created:         ts,
		LastModified:    ts,
		Commands:        commands,
		AssetTypes:      map[string]AssetType{},
		Entities:        map[string]Entity{},
		Principles:      principles,
		AssetReferences: map[string]AssetReference{},
	}
}

// Touch refreshes the document's last_modified stamp and returns the
// encoded timestamp so the caller can stamp the mutated sub-entity with
// the same instant. The stamp never moves backwards, even if the wall
// clock does.
func (d *Document) Touch(now time.Time) string {
	ts := FormatTime(now)
	if ts < d.LastModified {
		ts = d.LastModified
	}
	d.LastModified = ts
	return ts
}

// builtinCommands is the command registry seeded into new documents.
var builtinCommands = map[string]string{
	"ar":    "Asset Register - Manages asset references",
	"at":    "Asset Type - Manages asset types",
	"er":    "Entity Register - Manages entity definitions",
	"pr":    "Principle - Manages principles for reviewing assets",
	"setup": "Creates VQL directory in current location",
	"st":    "Store - Stores a review for an asset",
	"se":    "Set Exemplar - Sets exemplar status for an asset",
	"sc":    "Set Compliance - Sets compliance rating for an asset",
	"rv":    "Review - AI-assisted review of assets (LLM only)",
	"rf":    "Refactor - AI-assisted refactoring of assets (LLM only)",
}

// defaultPrinciples are created by setup so a fresh workspace can review
// immediately.
var defaultPrinciples = map[string]struct {
	long     string
	guidance string
}{
	"a": {"Architecture", "Architecture evaluation guidelines"},
	"s": {"Security", "Security evaluation guidelines"},
	"p": {"Performance", "Performance evaluation guidelines"},
	"u": {"UI/UX", "UI/UX evaluation guidelines"},
}
