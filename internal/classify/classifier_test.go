package classify

import "testing"

func testClassifier(t *testing.T) *Classifier {
	t.Helper()
	cls, err := NewClassifier([]string{"google", "ibm", "microsoft research", "aws"})
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return cls
}

func TestNewClassifierEmptyCatalog(t *testing.T) {
	if _, err := NewClassifier(nil); err == nil {
		t.Error("expected error for empty catalog")
	}
}

func TestMatchesWholeWord(t *testing.T) {
	cls := testClassifier(t)

	tests := []struct {
		name string
		want bool
	}{
		{"google", true},
		{"Google Research", true},
		{"GOOGLE, Inc.", true},
		{"ibm research lab", true},
		{"microsoft research asia", true},
		{"stanford university", false},
		// Substring inside a longer word must not match.
		{"ibmresearchlab university", false},
		{"googleplex avenue institute", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := cls.Matches(tt.name); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cls := testClassifier(t)

	tests := []struct {
		desc  string
		names []string
		want  Label
	}{
		{"no entries", nil, AllUnknown},
		{"only empty entries", []string{"", ""}, AllUnknown},
		{"academic only", []string{"stanford university"}, NoBigTech},
		{"big tech present", []string{"google research", "mit"}, HasBigTech},
		{"big tech after empty", []string{"", "aws"}, HasBigTech},
		{"mixed empty and academic", []string{"", "eth zurich"}, NoBigTech},
	}

	for _, tt := range tests {
		if got := cls.Classify(tt.names); got != tt.want {
			t.Errorf("%s: Classify(%v) = %q, want %q", tt.desc, tt.names, got, tt.want)
		}
	}
}

func TestClassifierEscapesMetaCharacters(t *testing.T) {
	// Catalog entries with regexp metacharacters must be matched
	// literally.
	cls, err := NewClassifier([]string{"h+p labs"})
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	if !cls.Matches("h+p labs division") {
		t.Error("expected literal match for escaped entry")
	}
	if cls.Matches("hhhp labs") {
		t.Error("expected no regexp interpretation of catalog entry")
	}
}
