package dictionary

import (
	"fmt"
	"math/rand"
)

// Policy selects one canonical pronunciation from a non-empty list of
// variants. It is injected into the store so the disambiguation rule can be
// swapped without touching callers.
type Policy func(variants []string) string

// PreferLast selects the last variant. In the ipa-dict source convention
// the last entry is the more standardized variant, which makes this the
// default. That convention is an empirical heuristic, hence the policy is
// configurable rather than hardcoded.
func PreferLast(variants []string) string {
	return variants[len(variants)-1]
}

// PreferFirst selects the first variant
func PreferFirst(variants []string) string {
	return variants[0]
}

// PreferRandom selects a uniformly random variant
func PreferRandom(variants []string) string {
	return variants[rand.Intn(len(variants))]
}

// PolicyFromName resolves a policy by its configuration name
func PolicyFromName(name string) (Policy, error) {
	switch name {
	case "", "last":
		return PreferLast, nil
	case "first":
		return PreferFirst, nil
	case "random":
		return PreferRandom, nil
	default:
		return nil, fmt.Errorf("unknown pronunciation policy: %s", name)
	}
}

// Entry is one canonical word-to-IPA mapping. Variants retains every parsed
// pronunciation so callers that want more than the canonical one are not
// locked out by the policy.
type Entry struct {
	Word     string
	IPA      string
	Language string
	Variants []string
}

// Stats describes a loaded dictionary
type Stats struct {
	TotalEntries  int
	UniqueWords   int
	Languages     map[string]int
	Disambiguated int
}

// Resolver is the lookup contract the translation pipeline depends on
type Resolver interface {
	// Resolve returns the canonical IPA for a word
	Resolve(word string) (string, bool)

	// ReverseResolve returns a known word whose canonical IPA matches
	ReverseResolve(ipa string) (string, bool)
}

// Store is an in-memory dictionary for one language. Within one loaded
// store each word maps to exactly one IPA string.
type Store struct {
	language string
	policy   Policy
	entries  map[string]*Entry
	reverse  map[string]string
	stats    Stats
}

// NewStore creates an empty store. A nil policy defaults to PreferLast.
func NewStore(language string, policy Policy) *Store {
	if policy == nil {
		policy = PreferLast
	}
	return &Store{
		language: language,
		policy:   policy,
		entries:  make(map[string]*Entry),
		reverse:  make(map[string]string),
		stats:    Stats{Languages: make(map[string]int)},
	}
}

// Language returns the store's language code
func (s *Store) Language() string { return s.language }

// Ingest adds adapter rows to the store, disambiguating multi-pronunciation
// entries via the configured policy. Rows for other languages are ignored.
// IPA validation problems are returned as warnings, never as a failure:
// malformed source data must not abort an entire load.
func (s *Store) Ingest(rows []Row) []string {
	var warnings []string

	for _, row := range rows {
		if row.Language != s.language {
			continue
		}

		variants := ParsePronunciations(row.RawIPA)
		if len(variants) == 0 {
			warnings = append(warnings, fmt.Sprintf("word %q has no usable pronunciation", row.Word))
			continue
		}

		ipa := s.policy(variants)
		for _, r := range InvalidIPASymbols(ipa) {
			warnings = append(warnings,
				fmt.Sprintf("word %q contains non-canonical IPA character %q", row.Word, string(r)))
		}

		_, replacing := s.entries[row.Word]
		if !replacing {
			s.stats.UniqueWords++
			s.stats.TotalEntries++
			s.stats.Languages[row.Language]++
		}
		if len(variants) > 1 {
			s.stats.Disambiguated++
		}

		// later rows for the same word replace earlier ones
		entry := &Entry{Word: row.Word, IPA: ipa, Language: row.Language, Variants: variants}
		s.entries[row.Word] = entry
		if _, taken := s.reverse[ipa]; !taken {
			s.reverse[ipa] = row.Word
		}
	}

	return warnings
}

// Resolve returns the canonical IPA pronunciation for a word
func (s *Store) Resolve(word string) (string, bool) {
	entry, ok := s.entries[word]
	if !ok {
		return "", false
	}
	return entry.IPA, true
}

// ReverseResolve returns a word whose canonical IPA matches exactly
func (s *Store) ReverseResolve(ipa string) (string, bool) {
	word, ok := s.reverse[ipa]
	return word, ok
}

// Variants returns every parsed pronunciation for a word
func (s *Store) Variants(word string) []string {
	if entry, ok := s.entries[word]; ok {
		return entry.Variants
	}
	return nil
}

// Entries returns all canonical entries in unspecified order
func (s *Store) Entries() []*Entry {
	out := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out
}

// Stats returns statistics about the loaded dictionary
func (s *Store) Stats() Stats { return s.stats }
