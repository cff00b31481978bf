package dictionary

import (
	"strings"
	"testing"
)

func TestParsePronunciations_Slashed(t *testing.T) {
	variants := ParsePronunciations("/həˈloʊ/, /hɛˈloʊ/")
	if len(variants) != 2 {
		t.Fatalf("Expected 2 variants, got %d: %v", len(variants), variants)
	}
	if variants[0] != "həˈloʊ" || variants[1] != "hɛˈloʊ" {
		t.Errorf("Unexpected variants: %v", variants)
	}
}

func TestParsePronunciations_PlainCommas(t *testing.T) {
	variants := ParsePronunciations("a, b ,c")
	if len(variants) != 3 || variants[2] != "c" {
		t.Errorf("Expected [a b c], got %v", variants)
	}
}

func TestIngest_DisambiguationPrefersLast(t *testing.T) {
	store := NewStore("de", nil)
	store.Ingest([]Row{{Word: "test", RawIPA: "a,b,c", Language: "de"}})

	ipa, ok := store.Resolve("test")
	if !ok {
		t.Fatal("Expected word to resolve")
	}
	if ipa != "c" {
		t.Errorf("Expected last variant 'c', got '%s'", ipa)
	}
}

func TestIngest_PolicySwap(t *testing.T) {
	store := NewStore("de", PreferFirst)
	store.Ingest([]Row{{Word: "test", RawIPA: "/a/, /b/", Language: "de"}})

	if ipa, _ := store.Resolve("test"); ipa != "a" {
		t.Errorf("Expected first variant 'a', got '%s'", ipa)
	}
}

func TestPolicyFromName(t *testing.T) {
	for _, name := range []string{"", "last", "first", "random"} {
		if _, err := PolicyFromName(name); err != nil {
			t.Errorf("PolicyFromName(%q) failed: %v", name, err)
		}
	}

	if _, err := PolicyFromName("shortest"); err == nil {
		t.Error("Expected error for unknown policy name")
	}
}

func TestIngest_OneIPAPerWord(t *testing.T) {
	store := NewStore("de", nil)
	store.Ingest([]Row{
		{Word: "straße", RawIPA: "/ˈʃtʁaːsə/", Language: "de"},
		{Word: "straße", RawIPA: "/ˈʃtraːsə/", Language: "de"},
	})

	stats := store.Stats()
	if stats.UniqueWords != 1 {
		t.Errorf("Expected 1 unique word, got %d", stats.UniqueWords)
	}
	if stats.TotalEntries != 1 {
		t.Errorf("Expected 1 entry after replacement, got %d", stats.TotalEntries)
	}
	if ipa, _ := store.Resolve("straße"); ipa != "ˈʃtraːsə" {
		t.Errorf("Expected later row to win, got '%s'", ipa)
	}
}

func TestIngest_IgnoresOtherLanguages(t *testing.T) {
	store := NewStore("de", nil)
	store.Ingest([]Row{
		{Word: "sol", RawIPA: "/sol/", Language: "es"},
		{Word: "rast", RawIPA: "/ʁast/", Language: "de"},
	})

	if _, ok := store.Resolve("sol"); ok {
		t.Error("Spanish row must not land in the German store")
	}
	if _, ok := store.Resolve("rast"); !ok {
		t.Error("German row missing")
	}
}

func TestIngest_ValidationWarningsAreNonFatal(t *testing.T) {
	store := NewStore("de", nil)
	warnings := store.Ingest([]Row{
		{Word: "bad", RawIPA: "/ab#/", Language: "de"},
		{Word: "good", RawIPA: "/ab/", Language: "de"},
	})

	if len(warnings) == 0 {
		t.Fatal("Expected a validation warning for non-canonical character")
	}
	if !strings.Contains(warnings[0], "bad") || !strings.Contains(warnings[0], "#") {
		t.Errorf("Warning should name word and character: %s", warnings[0])
	}

	// the offending entry still loads
	if _, ok := store.Resolve("bad"); !ok {
		t.Error("Non-canonical IPA must not abort the load")
	}
	if _, ok := store.Resolve("good"); !ok {
		t.Error("Subsequent rows must still load")
	}
}

func TestStats_DisambiguationCount(t *testing.T) {
	store := NewStore("de", nil)
	store.Ingest([]Row{
		{Word: "one", RawIPA: "/a/", Language: "de"},
		{Word: "two", RawIPA: "/a/, /b/", Language: "de"},
		{Word: "three", RawIPA: "/a/, /b/, /c/", Language: "de"},
	})

	if got := store.Stats().Disambiguated; got != 2 {
		t.Errorf("Expected 2 disambiguated words, got %d", got)
	}
}

func TestReverseResolve(t *testing.T) {
	store := NewStore("es", nil)
	store.Ingest([]Row{{Word: "sol", RawIPA: "/sol/", Language: "es"}})

	word, ok := store.ReverseResolve("sol")
	if !ok || word != "sol" {
		t.Errorf("Expected reverse lookup to find 'sol', got '%s' (ok=%v)", word, ok)
	}

	if _, ok := store.ReverseResolve("luna"); ok {
		t.Error("Expected reverse miss for unknown IPA")
	}
}

func TestVariants_KeepAll(t *testing.T) {
	store := NewStore("de", nil)
	store.Ingest([]Row{{Word: "test", RawIPA: "/a/, /b/", Language: "de"}})

	variants := store.Variants("test")
	if len(variants) != 2 {
		t.Errorf("Expected both variants retained, got %v", variants)
	}
}

func TestInvalidIPASymbols(t *testing.T) {
	if bad := InvalidIPASymbols("ˈʃtʁaːsə"); len(bad) != 0 {
		t.Errorf("Expected no invalid symbols, got %v", bad)
	}

	bad := InvalidIPASymbols("a1b")
	if len(bad) != 1 || bad[0] != '1' {
		t.Errorf("Expected ['1'], got %v", bad)
	}
}
