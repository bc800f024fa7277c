package flattree

import "strings"

// KeyAlphabet lists the characters selection keys are built from.
const KeyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// KeyWidth returns the fixed key length needed to label count lines.
// Every key in a tree has this length, so no key is a prefix of another.
func KeyWidth(count int) int {
	base := len(KeyAlphabet)
	width := 1
	capacity := base
	for capacity < count {
		width++
		if capacity > count/base {
			break
		}
		capacity *= base
	}
	return width
}

// EncodeKey writes index in base len(KeyAlphabet), left padded with the
// first alphabet character to width.
func EncodeKey(index int, width int) string {
	base := len(KeyAlphabet)
	digits := make([]byte, width)
	for position := width - 1; position >= 0; position-- {
		digits[position] = KeyAlphabet[index%base]
		index /= base
	}
	return string(digits)
}

// IsKeyCharacter reports whether r can appear in a selection key.
func IsKeyCharacter(r rune) bool {
	return r < 128 && strings.ContainsRune(KeyAlphabet, r)
}

// AssignKeys labels every selectable line in order, skipping pruned markers.
func AssignKeys(lines []Line) {
	selectableCount := 0
	for _, line := range lines {
		if line.Selectable() {
			selectableCount++
		}
	}
	if selectableCount == 0 {
		return
	}
	width := KeyWidth(selectableCount)
	keyIndex := 0
	for lineIndex := range lines {
		if !lines[lineIndex].Selectable() {
			lines[lineIndex].Key = ""
			continue
		}
		lines[lineIndex].Key = EncodeKey(keyIndex, width)
		keyIndex++
	}
}
