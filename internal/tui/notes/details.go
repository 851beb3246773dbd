package notes

import (
	"fmt"
	"strings"
	"time"

	"github.com/Paintersrp/forgetful/internal/cache"
	"github.com/Paintersrp/forgetful/internal/constants"
	"github.com/Paintersrp/forgetful/internal/note"
	"github.com/Paintersrp/forgetful/utils"
)

const previewCacheSize = 64

type previewKey struct {
	id      string
	width   int
	content string
}

type previewCache = cache.LRU[previewKey, string]

func newPreviewCache() *previewCache {
	return cache.New[previewKey, string](previewCacheSize)
}

// renderDetails draws the metadata block and the rendered body for item.
func renderDetails(item ListItem, width int, now time.Time, previews *previewCache) string {
	n := item.entry.Note
	d := item.entry.Decision

	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n\n")

	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(label+":"), value)
	}

	row("ID", n.ShortID())
	row("Status", statusStyleFor(n.Status).Render(n.Status.String()))
	row("Priority", priorityStyleFor(n.Priority).Render(n.Priority.Label()))
	if len(n.Tags) > 0 {
		row("Tags", tagStyle.Render(strings.Join(n.Tags, ", ")))
	}
	if due := dueLabel(n.DueDate, now); due != "" {
		row("Due", due)
	}
	row("Created", n.CreatedAt.Local().Format(time.DateTime))
	row("Modified", fmt.Sprintf("%s (%s)",
		n.ModifiedAt.Local().Format(time.DateTime),
		utils.FormatAge(now.Sub(n.LastTouched())),
	))
	if done, total := note.Subtasks(n.Content); total > 0 {
		row("Subtasks", fmt.Sprintf("%d/%d", done, total))
	}
	row("Forget chance", fmt.Sprintf("%.0f%%", d.Probability*100))

	if d.Forgotten {
		b.WriteString(forgottenStyle.Render("\nI... don't remember writing this one.\n"))
	}
	if d.Misspelled {
		b.WriteString(misspelledStyle.Render("\n" + constants.Messages["misspelled"] + "\n"))
	}

	if strings.TrimSpace(d.Content) != "" {
		b.WriteString("\n")
		b.WriteString(renderPreview(n.ID, d.Content, width, previews))
	}

	return b.String()
}

func renderPreview(id, content string, width int, previews *previewCache) string {
	key := previewKey{id: id, width: width, content: content}
	if previews != nil {
		if out, ok := previews.Get(key); ok {
			return out
		}
	}

	out := utils.RenderMarkdownPreview(content, width)
	if previews != nil {
		previews.Put(key, out)
	}
	return out
}
