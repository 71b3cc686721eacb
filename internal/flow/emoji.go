package flow

// maxSymbolLen bounds category symbols to a few runes; enough for one
// composed emoji or a short glyph sequence.
const maxSymbolLen = 3

// emojiRanges covers the Unicode blocks category symbols may use.
var emojiRanges = [][2]rune{
	{0x1F000, 0x1F02F}, // Mahjong tiles
	{0x1F0A0, 0x1F0FF}, // Playing cards
	{0x1F1E6, 0x1F1FF}, // Regional indicators
	{0x1F300, 0x1F5FF}, // Misc symbols and pictographs
	{0x1F600, 0x1F64F}, // Emoticons
	{0x1F680, 0x1F6FF}, // Transport and map
	{0x1F700, 0x1F77F}, // Alchemical
	{0x1F900, 0x1F9FF}, // Supplemental symbols
	{0x1FA00, 0x1FAFF}, // Extended-A symbols
	{0x2600, 0x26FF},   // Misc symbols
	{0x2700, 0x27BF},   // Dingbats
	{0x2B00, 0x2BFF},   // Misc symbols and arrows
	{0x2190, 0x21FF},   // Arrows
	{0x2300, 0x23FF},   // Misc technical (clocks etc.)
}

// emojiModifiers join or decorate emoji without being emoji themselves.
var emojiModifiers = map[rune]bool{
	0x200D:  true, // zero-width joiner
	0xFE0F:  true, // variation selector-16
	0x20E3:  true, // combining enclosing keycap
	0x1F3FB: true, // skin tone modifiers
	0x1F3FC: true,
	0x1F3FD: true,
	0x1F3FE: true,
	0x1F3FF: true,
}

// ValidSymbol reports whether s is a category symbol: non-empty, at
// most maxSymbolLen runes, every rune an emoji or emoji modifier.
func ValidSymbol(s string) bool {
	if s == "" {
		return false
	}

	count := 0
	for _, r := range s {
		count++
		if count > maxSymbolLen {
			return false
		}
		if emojiModifiers[r] {
			continue
		}
		if !inEmojiRange(r) {
			return false
		}
	}
	return true
}

func inEmojiRange(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}
