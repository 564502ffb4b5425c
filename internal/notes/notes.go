// Package notes derives action items and topics from finished transcripts.
package notes

import (
	"sort"
	"strings"
)

// SplitSentences breaks text into sentences on '.', '!' and '?'. A run of
// terminators only ends a sentence when followed by whitespace or the end of
// the text, so decimals like "3.14" stay intact. Terminators are kept on
// their sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var start int

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		// Consume the whole terminator run ("...", "?!").
		for i+1 < len(runes) && isTerminator(runes[i+1]) {
			i++
		}
		if i+1 < len(runes) && !isSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}

	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// ExtractActionItems returns the sentences of text that contain any of the
// keywords. Matching is case-insensitive on the sentence side; the returned
// sentences keep their original casing.
func ExtractActionItems(text string, keywords []string) []string {
	var items []string
	for _, sentence := range SplitSentences(text) {
		lower := strings.ToLower(sentence)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				items = append(items, sentence)
				break
			}
		}
	}
	return items
}

// ExtractTopics returns the topN most frequent words of more than three
// characters, lowercased, most frequent first. Words with equal counts keep
// the order they first appeared in.
func ExtractTopics(text string, topN int) []string {
	counts := make(map[string]int)
	var order []string

	for _, word := range strings.Fields(text) {
		word = strings.ToLower(word)
		if len(word) <= 3 {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if topN > len(order) {
		topN = len(order)
	}
	return order[:topN]
}
