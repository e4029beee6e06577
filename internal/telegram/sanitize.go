package telegram

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const (
	MaxMessageLength     = 4096
	MaxQuestionLength    = 300
	MaxOptionLength      = 100
	MaxExplanationLength = 200
)

var allowedTags = map[string]bool{
	"b": true, "strong": true,
	"i": true, "em": true,
	"u": true, "ins": true,
	"s": true, "strike": true, "del": true,
	"code": true, "pre": true,
}

var (
	tagRe    = regexp.MustCompile(`</?([a-zA-Z][a-zA-Z0-9]*)\b[^<>]*>`)
	entityRe = regexp.MustCompile(`^&(#[0-9]+|#x[0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`)
)

// SanitizeHTML keeps allow-listed inline tags without attributes, drops every other tag and
// escapes stray markup characters. The visible text is cut at limit UTF-16 code units, the way
// the platform counts, and any tag left open by the cut is closed.
func SanitizeHTML(s string, limit int) string {
	var (
		b     strings.Builder
		open  []string
		used  int
		full  bool
	)

	writeText := func(text string) {
		for len(text) > 0 && !full {
			if text[0] == '&' {
				if m := entityRe.FindString(text); m != "" {
					n := textUnits(html.UnescapeString(m))
					if used+n > limit {
						full = true
						return
					}
					b.WriteString(m)
					text = text[len(m):]
					used += n
					continue
				}
			}

			r, size := utf8.DecodeRuneInString(text)
			n := runeUnits(r)
			if used+n > limit {
				full = true
				return
			}

			switch r {
			case '<':
				b.WriteString("&lt;")
			case '>':
				b.WriteString("&gt;")
			case '&':
				b.WriteString("&amp;")
			default:
				b.WriteString(text[:size])
			}
			text = text[size:]
			used += n
		}
	}

	last := 0
	for _, loc := range tagRe.FindAllStringSubmatchIndex(s, -1) {
		writeText(s[last:loc[0]])
		last = loc[1]
		if full {
			break
		}

		name := strings.ToLower(s[loc[2]:loc[3]])
		if !allowedTags[name] {
			continue
		}

		if s[loc[0]+1] == '/' {
			// Only close what is open so the output stays balanced.
			for i := len(open) - 1; i >= 0; i-- {
				if open[i] == name {
					for j := len(open) - 1; j >= i; j-- {
						b.WriteString("</" + open[j] + ">")
					}
					open = open[:i]
					break
				}
			}
			continue
		}

		b.WriteString("<" + name + ">")
		open = append(open, name)
	}
	if !full {
		writeText(s[last:])
	}

	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString("</" + open[i] + ">")
	}

	return b.String()
}

// PlainText strips every tag and decodes entities, for fields sent without a parse mode.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagRe.ReplaceAllString(s, "")))
}

// Truncate cuts s to at most n UTF-16 code units without splitting a rune and reports whether
// anything was cut.
func Truncate(s string, n int) (string, bool) {
	used := 0
	for pos, r := range s {
		used += runeUnits(r)
		if used > n {
			return s[:pos], true
		}
	}

	return s, false
}

// runeUnits is the length of r in UTF-16 code units. Runes outside the astral plane take one.
func runeUnits(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

func textUnits(s string) int {
	n := 0
	for _, r := range s {
		n += runeUnits(r)
	}
	return n
}
