package main

import (
	"strings"
	"unicode/utf8"
)

// wrapText greedily wraps on spaces. Words longer than width are split so
// long order ids cannot push a card past its border.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	wrapped := make([]string, 0, len(lines))
	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			wrapped = append(wrapped, "")
			continue
		}
		current := ""
		for _, word := range words {
			for utf8.RuneCountInString(word) > width {
				if current != "" {
					wrapped = append(wrapped, current)
					current = ""
				}
				runes := []rune(word)
				wrapped = append(wrapped, string(runes[:width]))
				word = string(runes[width:])
			}
			switch {
			case current == "":
				current = word
			case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width:
				current += " " + word
			default:
				wrapped = append(wrapped, current)
				current = word
			}
		}
		if current != "" {
			wrapped = append(wrapped, current)
		}
	}
	return strings.Join(wrapped, "\n")
}

func truncate(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}

func padRight(text string, width int) string {
	n := utf8.RuneCountInString(text)
	if n >= width {
		return text
	}
	return text + strings.Repeat(" ", width-n)
}

func compactSingleLine(text string, limit int) string {
	return truncate(strings.Join(strings.Fields(text), " "), limit)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
