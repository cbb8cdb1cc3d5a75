package geo

import "testing"

func testFixes() map[string]string {
	return map[string]string{
		"UK":  "GB",
		"USA": "US",
	}
}

func TestResolveAlias(t *testing.T) {
	r := NewCountryResolver(testFixes(), nil)

	code, ok := r.Resolve("UK")
	if !ok || code != "GB" {
		t.Errorf("expected UK -> GB, got %q (ok=%v)", code, ok)
	}

	code, ok = r.Resolve("USA")
	if !ok || code != "US" {
		t.Errorf("expected USA -> US, got %q (ok=%v)", code, ok)
	}
}

func TestResolveTwoLetterPassthrough(t *testing.T) {
	r := NewCountryResolver(testFixes(), nil)

	// Two-letter alpha tokens pass through upper-cased without validation.
	code, ok := r.Resolve("us")
	if !ok || code != "US" {
		t.Errorf("expected us -> US, got %q (ok=%v)", code, ok)
	}

	code, ok = r.Resolve("DE")
	if !ok || code != "DE" {
		t.Errorf("expected DE -> DE, got %q (ok=%v)", code, ok)
	}

	// Two characters but not alphabetic: falls through to name lookup and
	// fails.
	if _, ok := r.Resolve("U1"); ok {
		t.Error("expected U1 to be unresolvable")
	}
}

func TestResolveCountryName(t *testing.T) {
	r := NewCountryResolver(testFixes(), nil)

	code, ok := r.Resolve("Germany")
	if !ok || code != "DE" {
		t.Errorf("expected Germany -> DE, got %q (ok=%v)", code, ok)
	}

	code, ok = r.Resolve("France")
	if !ok || code != "FR" {
		t.Errorf("expected France -> FR, got %q (ok=%v)", code, ok)
	}
}

func TestResolvePunctuationRetry(t *testing.T) {
	r := NewCountryResolver(testFixes(), nil)

	code, ok := r.Resolve("Germany.")
	if !ok || code != "DE" {
		t.Errorf("expected Germany. -> DE, got %q (ok=%v)", code, ok)
	}
}

func TestResolveWhitespaceAndEmpty(t *testing.T) {
	r := NewCountryResolver(testFixes(), nil)

	code, ok := r.Resolve("  France  ")
	if !ok || code != "FR" {
		t.Errorf("expected trimmed France -> FR, got %q (ok=%v)", code, ok)
	}

	if _, ok := r.Resolve(""); ok {
		t.Error("expected empty token to be unresolvable")
	}
	if _, ok := r.Resolve("   "); ok {
		t.Error("expected whitespace token to be unresolvable")
	}
}

func TestResolveUnresolvable(t *testing.T) {
	r := NewCountryResolver(testFixes(), nil)

	for _, token := range []string{"Atlantis", "The Moon", "123"} {
		if code, ok := r.Resolve(token); ok {
			t.Errorf("expected %q to be unresolvable, got %q", token, code)
		}
	}
}

func TestResolveMemoizesMisses(t *testing.T) {
	r := NewCountryResolver(testFixes(), nil)

	// Same answer twice; the second call comes from the cache.
	for i := 0; i < 2; i++ {
		if _, ok := r.Resolve("Atlantis"); ok {
			t.Fatalf("call %d: expected Atlantis to be unresolvable", i+1)
		}
		if code, ok := r.Resolve("UK"); !ok || code != "GB" {
			t.Fatalf("call %d: expected UK -> GB, got %q (ok=%v)", i+1, code, ok)
		}
	}
}
