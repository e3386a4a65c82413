package narration

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// sentenceEnd holds the characters a chunk may end on, including the Arabic
// comma, semicolon and question mark
const sentenceEnd = ".!?;،؛؟\n"

// SplitText breaks text into chunks of at most maxRunes runes. It cuts after
// sentence punctuation first, then at the last space that fits, and only
// then mid-word. Chunks without letters or digits are dropped.
func SplitText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = 1
	}

	var chunks []string
	for _, sentence := range splitSentences(text) {
		for _, piece := range fitRunes(sentence, maxRunes) {
			piece = strings.TrimSpace(piece)
			if speakable(piece) {
				chunks = append(chunks, piece)
			}
		}
	}
	return chunks
}

// splitSentences cuts after each sentence-ending character, keeping it
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if strings.ContainsRune(sentenceEnd, r) {
			end := i + utf8.RuneLen(r)
			sentences = append(sentences, text[start:end])
			start = end
		}
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

// fitRunes splits s into pieces of at most max runes, preferring spaces
func fitRunes(s string, max int) []string {
	s = strings.TrimSpace(s)
	var pieces []string
	for utf8.RuneCountInString(s) > max {
		runes := []rune(s)
		cut := -1
		for i := max; i > 0; i-- {
			if unicode.IsSpace(runes[i]) {
				cut = i
				break
			}
		}
		if cut <= 0 {
			cut = max
		}
		pieces = append(pieces, string(runes[:cut]))
		s = strings.TrimSpace(string(runes[cut:]))
	}
	if s != "" {
		pieces = append(pieces, s)
	}
	return pieces
}

func speakable(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
