// Package importer batch-populates principles from a markdown document.
//
// The accepted convention is a heading whose text ends in a parenthesized
// shortcode, at any heading level:
//
//	# Architecture Principles (a)
//	...guidance until the next such heading...
//	## Security (s)
//
// Headings without a trailing shortcode do not start a new principle;
// they stay verbatim inside the current principle's guidance.
package importer

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/roach88/vql/internal/schema"
	"github.com/roach88/vql/internal/store"
)

// headingPattern matches `#... <Long Name> (<shortcode>)` heading lines.
// The shortcode is a single parenthesized token with no whitespace.
var headingPattern = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*\(([^()\s]+)\)\s*$`)

// Parsed is one principle discovered in a markdown document.
type Parsed struct {
	Short    string
	LongName string
	Guidance string
}

// Parse scans markdown text for principle headings. Text before the
// first heading is ignored; a document with no headings yields an empty
// slice, not an error.
func Parse(text string) []Parsed {
	var (
		out     []Parsed
		current *Parsed
		body    []string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Guidance = strings.TrimSpace(strings.Join(body, "\n"))
		out = append(out, *current)
		current = nil
		body = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			flush()
			current = &Parsed{Short: m[2], LongName: strings.TrimSpace(m[1])}
			continue
		}
		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return out
}

// Import parses markdown text and adds every discovered principle to the
// store. The whole batch is validated against the namespace before any
// principle commits, so a shortcode collision with a non-principle
// identifier fails the import all-or-nothing and leaves the document
// untouched. The caller persists with Save afterwards.
func Import(s *store.Store, text string) ([]schema.Principle, error) {
	parsed := Parse(text)
	if len(parsed) == 0 {
		return nil, nil
	}

	// Dry run: every shortcode must be syntactically valid and free in
	// the unified namespace before the first write happens.
	doc := s.Document()
	strict := s.Options().StrictIdentifiers
	for _, p := range parsed {
		short := store.NormalizeIdentifier(p.Short)
		if err := store.ValidateIdentifier(short, schema.KindPrinciple, strict); err != nil {
			return nil, err
		}
		if err := store.CheckAvailable(doc, short, schema.KindPrinciple); err != nil {
			return nil, err
		}
	}

	added := make([]schema.Principle, 0, len(parsed))
	for _, p := range parsed {
		principle, err := s.AddPrinciple(p.Short, p.LongName, p.Guidance)
		if err != nil {
			return added, err
		}
		added = append(added, principle)
	}
	return added, nil
}
