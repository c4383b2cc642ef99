package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vql/internal/store"
	"github.com/roach88/vql/internal/testutil"
)

const principlesDoc = `Preamble text before the first heading is ignored.

# Maintainability (m)

Code should be easy to change.

- Prefer small functions
- Name things well

## Notes

These notes belong to maintainability, the heading has no shortcode.

# Testing (t)
Every change ships with tests.
`

func TestParse(t *testing.T) {
	parsed := Parse(principlesDoc)
	require.Len(t, parsed, 2)

	assert.Equal(t, "m", parsed[0].Short)
	assert.Equal(t, "Maintainability", parsed[0].LongName)
	assert.Contains(t, parsed[0].Guidance, "Prefer small functions")
	assert.Contains(t, parsed[0].Guidance, "## Notes")
	assert.NotContains(t, parsed[0].Guidance, "Preamble")

	assert.Equal(t, "t", parsed[1].Short)
	assert.Equal(t, "Testing", parsed[1].LongName)
	assert.Equal(t, "Every change ships with tests.", parsed[1].Guidance)
}

func TestParseHeadingForms(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		count int
	}{
		{"deep heading level", "###### Deep (d)\nbody", 1},
		{"no shortcode", "# Just A Heading\nbody", 0},
		{"shortcode with spaces rejected", "# Bad (a b)\nbody", 0},
		{"empty parens rejected", "# Bad ()\nbody", 0},
		{"no headings at all", "plain text only", 0},
		{"empty document", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Parse(tt.text), tt.count)
		})
	}
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	_, vqlDir := testutil.TempWorkspace(t)
	opts := store.DefaultOptions()
	opts.Clock = testutil.NewClock().Now
	s, err := store.Init(vqlDir, opts)
	require.NoError(t, err)
	return s
}

func TestImport(t *testing.T) {
	s := testStore(t)

	added, err := Import(s, principlesDoc)
	require.NoError(t, err)
	require.Len(t, added, 2)

	m, err := s.GetPrinciple("m")
	require.NoError(t, err)
	assert.Equal(t, "Maintainability", m.LongName)
	assert.Contains(t, m.Guidance, "easy to change")
}

func TestImportOverwritesExistingPrinciple(t *testing.T) {
	s := testStore(t)

	// "a" is a default principle; importing a heading with the same
	// shortcode replaces it.
	added, err := Import(s, "# Accessibility (a)\nScreen reader support.")
	require.NoError(t, err)
	require.Len(t, added, 1)

	p, err := s.GetPrinciple("a")
	require.NoError(t, err)
	assert.Equal(t, "Accessibility", p.LongName)
}

func TestImportAllOrNothing(t *testing.T) {
	s := testStore(t)
	_, err := s.AddEntity("m", "Member")
	require.NoError(t, err)

	// "m" collides with the entity; the batch must fail without adding
	// the valid "t" principle either.
	_, err = Import(s, principlesDoc)
	require.Error(t, err)
	assert.True(t, store.IsNameConflict(err))

	_, err = s.GetPrinciple("t")
	assert.True(t, store.IsCode(err, store.ErrCodeUnknownPrinciple), "no principle from the batch may land")
}

func TestImportRejectsMultiCharShortcodeWhenStrict(t *testing.T) {
	s := testStore(t)

	_, err := Import(s, "# Maintainability (maint)\nbody")
	require.Error(t, err)
	assert.True(t, store.IsCode(err, store.ErrCodeInvalidIdentifier))
}

func TestImportEmptyDocument(t *testing.T) {
	s := testStore(t)

	added, err := Import(s, "no headings here")
	require.NoError(t, err)
	assert.Empty(t, added)
}
