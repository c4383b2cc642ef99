package store

import (
	"testing"
	"time"

	"github.com/roach88/vql/internal/schema"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		singleRune bool
		wantCode   ErrorCode
	}{
		{"single letter", "a", true, ""},
		{"single unicode rune", "ü", true, ""},
		{"multi char unrestricted", "user_controller", false, ""},
		{"empty", "", false, ErrCodeInvalidIdentifier},
		{"forward slash", "a/b", false, ErrCodeInvalidIdentifier},
		{"backslash", `a\b`, false, ErrCodeInvalidIdentifier},
		{"interior space", "a b", false, ErrCodeInvalidIdentifier},
		{"tab", "a\tb", false, ErrCodeInvalidIdentifier},
		{"multi char when single required", "ab", true, ErrCodeInvalidIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.id, schema.KindPrinciple, tt.singleRune)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ValidateIdentifier(%q) = %v, want nil", tt.id, err)
				}
				return
			}
			if CodeOf(err) != tt.wantCode {
				t.Fatalf("ValidateIdentifier(%q) code = %q, want %q", tt.id, CodeOf(err), tt.wantCode)
			}
		})
	}
}

func TestNormalizeIdentifierNFC(t *testing.T) {
	// "é" spelled as e + combining acute must collide with precomposed é.
	decomposed := "é"
	precomposed := "é"
	if NormalizeIdentifier(decomposed) != NormalizeIdentifier(precomposed) {
		t.Fatal("NFC normalization should unify composed and decomposed spellings")
	}
}

func TestCheckAvailableUnifiedNamespace(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	doc := schema.NewDocument(now)
	ts := doc.LastModified
	doc.Entities["u"] = schema.Entity{ShortName: "u", Description: "User", LastModified: ts}
	doc.AssetTypes["c"] = schema.AssetType{ShortName: "c", Description: "Controller", LastModified: ts}
	doc.AssetReferences["uc"] = schema.AssetReference{ShortName: "uc", Entity: "u", AssetType: "c", Path: "x.rb", LastModified: ts}

	tests := []struct {
		name     string
		id       string
		kind     schema.Kind
		conflict bool
	}{
		{"fresh identifier", "z", schema.KindEntity, false},
		{"same kind reuse is overwrite", "u", schema.KindEntity, false},
		{"entity id as principle", "u", schema.KindPrinciple, true},
		{"default principle id as entity", "a", schema.KindEntity, true},
		{"asset id as asset type", "uc", schema.KindAssetType, true},
		{"asset type id as asset", "c", schema.KindAssetReference, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAvailable(doc, tt.id, tt.kind)
			if tt.conflict {
				if !IsNameConflict(err) {
					t.Fatalf("CheckAvailable(%q, %s) = %v, want NAME_CONFLICT", tt.id, tt.kind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CheckAvailable(%q, %s) = %v, want nil", tt.id, tt.kind, err)
			}
		})
	}
}

func TestLookupKind(t *testing.T) {
	doc := schema.NewDocument(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))

	if kind, ok := LookupKind(doc, "a"); !ok || kind != schema.KindPrinciple {
		t.Fatalf("LookupKind(a) = %q, %v", kind, ok)
	}
	if _, ok := LookupKind(doc, "missing"); ok {
		t.Fatal("LookupKind(missing) should report absence")
	}
}
