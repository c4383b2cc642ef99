package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaSource string

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
	schemaErr   error
)

// documentSchema compiles the embedded CUE schema once per process.
func documentSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		v := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			schemaErr = fmt.Errorf("compile embedded schema: %w", err)
			return
		}
		schemaValue = v.LookupPath(cue.ParsePath("#Document"))
		if err := schemaValue.Err(); err != nil {
			schemaErr = fmt.Errorf("lookup #Document: %w", err)
		}
	})
	return schemaValue, schemaErr
}

// ValidateDocumentBytes checks that raw JSON bytes conform to the
// document schema: required fields present, value types correct, ratings
// one of H/M/L, timestamps well formed. Returns a descriptive error for
// the first violation found.
func ValidateDocumentBytes(data []byte) error {
	sv, err := documentSchema()
	if err != nil {
		return err
	}
	if err := cuejson.Validate(data, sv); err != nil {
		return fmt.Errorf("document does not match schema: %w", err)
	}
	return nil
}
