package correspondence

import "unicode"

// stress marks stand alone; every other spacing modifier letter (length
// marks, aspiration, labialization, ...) binds to the preceding base symbol
func isStandaloneMark(r rune) bool {
	switch r {
	case 'ˈ', 'ˌ', '.', '|', '‖', ' ':
		return true
	}
	return false
}

func isModifier(r rune) bool {
	if unicode.Is(unicode.Mn, r) {
		return true
	}
	return r >= 0x02B0 && r <= 0x02FF && !isStandaloneMark(r)
}

// SplitSymbols segments an IPA string into phoneme-level symbols. Combining
// diacritics and modifier letters attach to the preceding base character,
// so "aː" and "t̪" each come back as one symbol. Stress and prosodic marks
// are symbols of their own.
func SplitSymbols(ipa string) []string {
	var symbols []string

	for _, r := range ipa {
		if isModifier(r) && len(symbols) > 0 {
			symbols[len(symbols)-1] += string(r)
			continue
		}
		symbols = append(symbols, string(r))
	}

	return symbols
}
