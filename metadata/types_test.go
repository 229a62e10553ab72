package metadata

import "testing"

func TestValueAccessors(t *testing.T) {
	if v, ok := Int(42).AsInt64(); !ok || v != 42 {
		t.Errorf("AsInt64 = (%d, %v)", v, ok)
	}
	if _, ok := Int(42).AsFloat64(); ok {
		t.Error("AsFloat64 must fail on an int")
	}
	if v, ok := Int(42).Numeric(); !ok || v != 42.0 {
		t.Errorf("Numeric = (%v, %v)", v, ok)
	}
	if s, ok := String("hello").AsString(); !ok || s != "hello" {
		t.Errorf("AsString = (%q, %v)", s, ok)
	}
	if !Null().IsNull() || Bool(false).IsNull() {
		t.Error("IsNull misreports")
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Null(), "<null>"},
		{Bool(true), "true"},
		{Int(-5), "-5"},
		{Float(1.5), "1.5000"},
		{String("A"), "A"},
	}
	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDocumentClone(t *testing.T) {
	doc := Document{"sample": String("A"), "scan": Int(1)}
	clone := doc.Clone()
	clone["scan"] = Int(2)
	if !Equal(doc["scan"], Int(1)) {
		t.Error("clone mutation leaked into original")
	}
	if Document(nil).Clone() != nil {
		t.Error("nil document must clone to nil")
	}
}
