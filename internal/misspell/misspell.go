// Package misspell introduces small, readable typos into display text.
package misspell

import (
	"strings"
	"unicode"

	"github.com/Paintersrp/forgetful/internal/chance"
	"github.com/Paintersrp/forgetful/internal/config"
)

// MinLength is the shortest word core that may be mutated.
const MinLength = 3

// Op is a single typo operation.
type Op int

const (
	// Transpose swaps two adjacent interior letters.
	Transpose Op = iota
	// Delete drops one interior letter.
	Delete
	// Substitute replaces an interior letter with a neighbouring key.
	Substitute
	// Duplicate doubles an interior letter.
	Duplicate
)

// Ops lists every operation in selection order.
var Ops = []Op{Transpose, Delete, Substitute, Duplicate}

func (o Op) String() string {
	switch o {
	case Transpose:
		return "transpose"
	case Delete:
		return "delete"
	case Substitute:
		return "substitute"
	case Duplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// Mutate walks the words of text and, with the configured per-word
// probability, applies one typo to each. Whitespace is kept byte for byte.
// persist reports whether the result should be written back to storage.
func Mutate(text string, s config.Settings, rng chance.Source) (out string, persist bool) {
	if !s.MisspellingEnabled || text == "" {
		return text, false
	}

	p := chance.Clamp01(s.MisspellingProbability)
	var b strings.Builder
	b.Grow(len(text) + 8)

	for _, tok := range tokenize(text) {
		if tok.space {
			b.WriteString(tok.text)
			continue
		}
		if rng.Float64() >= p {
			b.WriteString(tok.text)
			continue
		}
		b.WriteString(mutateWord(tok.text, rng))
	}

	out = b.String()
	return out, s.MisspellingPersist && out != text
}

// Apply performs op on word at the given core position. Leading and trailing
// punctuation is left alone. ok is false when op cannot be applied there.
func Apply(word string, op Op, pos int) (string, bool) {
	lead, core, trail, eligible := split(word)
	if !eligible {
		return word, false
	}
	mutated, ok := applyCore(core, op, pos, 0)
	if !ok {
		return word, false
	}
	return lead + string(mutated) + trail, true
}

// Positions returns the core positions at which op applies to word.
func Positions(word string, op Op) []int {
	_, core, _, eligible := split(word)
	if !eligible {
		return nil
	}
	return positions(core, op)
}

func mutateWord(word string, rng chance.Source) string {
	lead, core, trail, eligible := split(word)
	if !eligible {
		return word
	}

	var ops []Op
	for _, op := range Ops {
		if len(positions(core, op)) > 0 {
			ops = append(ops, op)
		}
	}
	if len(ops) == 0 {
		return word
	}

	op := ops[rng.IntN(len(ops))]
	candidates := positions(core, op)
	pos := candidates[rng.IntN(len(candidates))]

	neighbour := 0
	if op == Substitute {
		neighbour = rng.IntN(len(neighbours(core[pos])))
	}

	mutated, ok := applyCore(core, op, pos, neighbour)
	if !ok {
		return word
	}
	return lead + string(mutated) + trail
}

func positions(core []rune, op Op) []int {
	n := len(core)
	if n < MinLength {
		return nil
	}

	var out []int
	switch op {
	case Transpose:
		for i := 1; i+1 <= n-2; i++ {
			if core[i] != core[i+1] {
				out = append(out, i)
			}
		}
	case Delete:
		if n <= MinLength {
			return nil
		}
		for i := 1; i <= n-2; i++ {
			out = append(out, i)
		}
	case Substitute:
		for i := 1; i <= n-2; i++ {
			if len(neighbours(core[i])) > 0 {
				out = append(out, i)
			}
		}
	case Duplicate:
		for i := 1; i <= n-2; i++ {
			out = append(out, i)
		}
	}
	return out
}

func applyCore(core []rune, op Op, pos, neighbour int) ([]rune, bool) {
	if !contains(positions(core, op), pos) {
		return nil, false
	}

	out := make([]rune, 0, len(core)+1)
	switch op {
	case Transpose:
		out = append(out, core...)
		out[pos], out[pos+1] = out[pos+1], out[pos]
	case Delete:
		out = append(out, core[:pos]...)
		out = append(out, core[pos+1:]...)
	case Substitute:
		keys := neighbours(core[pos])
		if neighbour < 0 || neighbour >= len(keys) {
			neighbour = 0
		}
		out = append(out, core...)
		out[pos] = keys[neighbour]
	case Duplicate:
		out = append(out, core[:pos+1]...)
		out = append(out, core[pos:]...)
	default:
		return nil, false
	}
	return out, true
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// split separates a whitespace free token into leading punctuation, a letter
// core and trailing punctuation. eligible is false when the core is too short
// or holds anything other than letters.
func split(word string) (lead string, core []rune, trail string, eligible bool) {
	runes := []rune(word)
	start, end := 0, len(runes)
	for start < end && isEdge(runes[start]) {
		start++
	}
	for end > start && isEdge(runes[end-1]) {
		end--
	}

	core = runes[start:end]
	if len(core) < MinLength {
		return word, nil, "", false
	}
	for _, r := range core {
		if !unicode.IsLetter(r) {
			return word, nil, "", false
		}
	}
	return string(runes[:start]), core, string(runes[end:]), true
}

func isEdge(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

type token struct {
	text  string
	space bool
}

func tokenize(text string) []token {
	var (
		tokens []token
		start  int
		space  bool
	)
	for i, r := range text {
		isSpace := unicode.IsSpace(r)
		if i == 0 {
			space = isSpace
			continue
		}
		if isSpace != space {
			tokens = append(tokens, token{text: text[start:i], space: space})
			start = i
			space = isSpace
		}
	}
	if start < len(text) {
		tokens = append(tokens, token{text: text[start:], space: space})
	}
	return tokens
}
