package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/mathgen/internal/tagged"
)

// consoleMarker flags the correct option in console output.
const consoleMarker = "✔ "

// Preview writes a styled console rendering of records to w, one bordered
// card per question.
func Preview(w io.Writer, title string, records []tagged.Record) error {
	var (
		out  strings.Builder
		card strings.Builder
	)

	flush := func() {
		if card.Len() == 0 {
			return
		}
		out.WriteString(cardStyle.Render(strings.TrimRight(card.String(), "\n")))
		out.WriteString("\n")
		card.Reset()
	}

	for _, b := range Layout(title, records) {
		switch b.Kind {
		case KindDocTitle:
			out.WriteString(docTitleStyle.Render(b.Text))
			out.WriteString("\n")
		case KindHeading:
			flush()
			card.WriteString(headingStyle.Render(b.Text) + "\n")
		case KindSubheading:
			card.WriteString(subheadingStyle.Render(b.Text) + "\n")
		case KindText:
			card.WriteString(bodyStyle.Render(b.Text) + "\n")
		case KindNote, KindMeta:
			card.WriteString(noteStyle.Render(b.Text) + "\n")
		case KindOption:
			if b.Correct {
				card.WriteString(correctStyle.Render("  "+consoleMarker+b.Text) + "\n")
			} else {
				card.WriteString(bodyStyle.Render("  • "+b.Text) + "\n")
			}
		}
	}
	flush()

	_, err := fmt.Fprint(w, out.String())
	return err
}
