package misspell

import "unicode"

var qwertyRows = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

var adjacent = buildAdjacency()

func buildAdjacency() map[rune][]rune {
	pos := make(map[rune][2]int)
	for row, keys := range qwertyRows {
		for col, k := range keys {
			pos[k] = [2]int{row, col}
		}
	}

	out := make(map[rune][]rune, len(pos))
	for row, keys := range qwertyRows {
		for col, k := range keys {
			for _, other := range qwertyRows[max(row-1, 0):min(row+2, len(qwertyRows))] {
				for _, o := range other {
					p := pos[o]
					if o == k || p[1] < col-1 || p[1] > col+1 {
						continue
					}
					out[k] = append(out[k], o)
				}
			}
		}
	}
	return out
}

// neighbours returns the keys surrounding r on a QWERTY layout, in the same
// case as r. Letters off the layout have no neighbours.
func neighbours(r rune) []rune {
	lower := unicode.ToLower(r)
	keys, ok := adjacent[lower]
	if !ok {
		return nil
	}
	if lower == r {
		return keys
	}
	upper := make([]rune, len(keys))
	for i, k := range keys {
		upper[i] = unicode.ToUpper(k)
	}
	return upper
}
