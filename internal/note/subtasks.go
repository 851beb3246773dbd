package note

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Subtasks counts markdown checkbox list items in content.
func Subtasks(content string) (done, total int) {
	if strings.TrimSpace(content) == "" {
		return 0, 0
	}

	source := []byte(content)
	document := goldmark.DefaultParser().Parse(text.NewReader(source))

	_ = ast.Walk(
		document,
		func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			item, ok := n.(*ast.ListItem)
			if !ok {
				return ast.WalkContinue, nil
			}

			line := strings.TrimSpace(string(item.Text(source)))
			switch {
			case strings.HasPrefix(line, "[ ]"):
				total++
			case strings.HasPrefix(line, "[x]"), strings.HasPrefix(line, "[X]"):
				total++
				done++
			}
			return ast.WalkContinue, nil
		},
	)

	return done, total
}
