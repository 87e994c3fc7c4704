package dberr_test

import (
	"strings"
	"testing"

	"schema-gate/internal/dberr"
)

func TestClassifyEnumRace(t *testing.T) {
	tests := []struct {
		name      string
		desc      dberr.Descriptor
		wantFatal bool
	}{
		{
			name: "unique violation on pg_type with enum-prefixed value is benign",
			desc: dberr.Descriptor{
				Kind:  dberr.KindUniqueViolation,
				Table: "pg_type",
				Value: "enum_users_role",
			},
			wantFatal: false,
		},
		{
			name: "unique violation on pg_type with non-enum value is fatal",
			desc: dberr.Descriptor{
				Kind:  dberr.KindUniqueViolation,
				Table: "pg_type",
				Value: "citext",
			},
			wantFatal: true,
		},
		{
			name: "unique violation on a user table is fatal even with enum-like value",
			desc: dberr.Descriptor{
				Kind:  dberr.KindUniqueViolation,
				Table: "users",
				Value: "enum_users_role",
			},
			wantFatal: true,
		},
		{
			name:      "unique violation with no structured fields is fatal",
			desc:      dberr.Descriptor{Kind: dberr.KindUniqueViolation},
			wantFatal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := dberr.Classify(&tt.desc)
			if v.Fatal != tt.wantFatal {
				t.Errorf("Classify() fatal = %v, want %v (reason: %s)", v.Fatal, tt.wantFatal, v.Reason)
			}
		})
	}
}

func TestClassifyMissingRelation(t *testing.T) {
	v := dberr.Classify(&dberr.Descriptor{
		Kind:     dberr.KindUndefinedRelation,
		Relation: "users",
	})
	if v.Fatal {
		t.Errorf("missing relation during first-time setup must be non-fatal, got fatal (%s)", v.Reason)
	}

	// Same database error class without the missing-relation signature.
	v = dberr.Classify(&dberr.Descriptor{Kind: dberr.KindDatabase, Message: "deadlock detected"})
	if !v.Fatal {
		t.Error("generic database error must be fatal")
	}
}

func TestClassifyDuplicateObject(t *testing.T) {
	v := dberr.Classify(&dberr.Descriptor{Kind: dberr.KindDuplicateObject})
	if v.Fatal {
		t.Errorf("duplicate object is a creation race, must be non-fatal (%s)", v.Reason)
	}
}

func TestClassifyConnectionSubtypeHints(t *testing.T) {
	tests := []struct {
		kind     dberr.Kind
		wantHint string
	}{
		{dberr.KindConnRefused, "DB_HOST:DB_PORT"},
		{dberr.KindHostNotFound, "DB_HOST"},
		{dberr.KindAccessDenied, "DB_USER"},
	}
	for _, tt := range tests {
		v := dberr.Classify(&dberr.Descriptor{Kind: tt.kind})
		if !v.Fatal {
			t.Errorf("%s must be fatal", tt.kind)
		}
		if !strings.Contains(v.Hint, tt.wantHint) {
			t.Errorf("%s: hint %q does not mention %q", tt.kind, v.Hint, tt.wantHint)
		}
	}
}

func TestClassifyFatalKinds(t *testing.T) {
	for _, kind := range []dberr.Kind{
		dberr.KindConnection,
		dberr.KindDatabase,
		dberr.KindProgramming,
		dberr.KindUnknown,
	} {
		if v := dberr.Classify(&dberr.Descriptor{Kind: kind}); !v.Fatal {
			t.Errorf("%s must be fatal", kind)
		}
	}
}

func TestVerifyVerdict(t *testing.T) {
	// Connection-level and database-level failures skip the entity.
	for _, kind := range []dberr.Kind{
		dberr.KindConnection,
		dberr.KindConnRefused,
		dberr.KindDatabase,
		dberr.KindUndefinedRelation,
	} {
		if v := dberr.VerifyVerdict(&dberr.Descriptor{Kind: kind}); v.Fatal {
			t.Errorf("%s during verify must skip, not abort", kind)
		}
	}
	// Programming errors abort immediately.
	for _, kind := range []dberr.Kind{dberr.KindProgramming, dberr.KindUnknown} {
		if v := dberr.VerifyVerdict(&dberr.Descriptor{Kind: kind}); !v.Fatal {
			t.Errorf("%s during verify must abort", kind)
		}
	}
}
