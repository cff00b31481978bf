package dictionary

// Canonical IPA symbol ranges. Base Latin letters, the IPA Extensions
// block, spacing modifier letters (stress and length marks), combining
// diacritics, and a handful of Greek letters and prosodic marks used by
// ipa-dict sources.
func isCanonicalIPASymbol(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 0x0250 && r <= 0x02AF: // IPA Extensions
		return true
	case r >= 0x02B0 && r <= 0x02FF: // Spacing Modifier Letters (ˈ ˌ ː ˑ ʰ ʷ ...)
		return true
	case r >= 0x0300 && r <= 0x036F: // Combining Diacritical Marks
		return true
	case r >= 0x1D00 && r <= 0x1DBF: // Phonetic Extensions
		return true
	}

	switch r {
	case 'β', 'θ', 'χ': // Greek letters used as IPA consonants
		return true
	case 'ç', 'ø', 'œ', 'æ', 'ð', 'ħ', 'ŋ': // Latin letters with IPA roles
		return true
	case '.', ' ', '|', '‖', '‿': // syllable and prosodic marks
		return true
	}

	return false
}

// InvalidIPASymbols returns the characters of ipa that fall outside the
// canonical IPA symbol set, in order of appearance
func InvalidIPASymbols(ipa string) []rune {
	var bad []rune
	for _, r := range ipa {
		if !isCanonicalIPASymbol(r) {
			bad = append(bad, r)
		}
	}
	return bad
}
