package explore

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// wordBounds returns the whitespace-delimited word around cursor and its
// byte boundaries within input.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	for start = cursor; start > 0; {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if unicode.IsSpace(r) {
			break
		}

		start -= size
	}

	for end = cursor; end < len(input); {
		r, size := utf8.DecodeRuneInString(input[end:])
		if unicode.IsSpace(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidates returns the names that may complete the word starting at
// wordStart: commands for the first word of a command line, packages for
// the argument of ":from", and components otherwise.
func (m model) candidates(input string, wordStart int) []string {
	head := strings.Fields(input[:wordStart])

	switch {
	case len(head) == 0 && strings.HasPrefix(input, ":"):
		out := make([]string, len(commands))
		for i, c := range commands {
			out[i] = ":" + c.name
		}

		return out

	case len(head) == 1 && head[0] == ":from":
		return m.session.Packages()

	case len(head) == 0:
		return m.names

	case len(head) == 1 && head[0] == ":list":
		return m.names

	default:
		return nil
	}
}

// computeMatches returns the fuzzy matches for the word at the cursor, best
// first, and the word boundaries.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, start, end := wordBounds(input, m.input.Position())
	if word == "" || word == ":" {
		return nil, start, end
	}

	names := m.candidates(input, start)
	if len(names) == 0 {
		return nil, start, end
	}

	return fuzzy.Find(word, names), start, end
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit within width.
func renderCandidateBar(matches fuzzy.Matches, suggIdx int, tabActive bool, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	limit := width - lipgloss.Width(ellipsis) - len(sep)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += len(sep)
		}

		if i > 0 && used+w > limit {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
