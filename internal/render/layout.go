package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/mathgen/internal/tagged"
)

// DefaultTitle is the document heading used when none is given.
const DefaultTitle = "Generated Questions"

// Kind classifies a layout block.
type Kind int

const (
	KindDocTitle Kind = iota
	KindHeading
	KindSubheading
	KindText
	KindNote
	KindMeta
	KindOption
	KindSpacer
)

// Block is one renderable paragraph of the question document.
type Block struct {
	Kind Kind
	Text string
	// Correct marks the option block holding the record's answer.
	Correct bool
}

var metaFields = []tagged.Field{
	tagged.FieldDifficulty,
	tagged.FieldSubject,
	tagged.FieldUnit,
	tagged.FieldTopic,
	tagged.FieldMarks,
}

var titleCase = cases.Title(language.English)

// metaLabel returns the display label of a metadata field.
func metaLabel(f tagged.Field) string {
	if f == tagged.FieldMarks {
		return "Marks"
	}
	return titleCase.String(f.Tag())
}

// MetadataLine joins the present metadata fields as "Label: value" pairs.
// It is empty when no metadata field is set.
func MetadataLine(r tagged.Record) string {
	var parts []string
	for _, f := range metaFields {
		if v := r.Get(f); v != "" {
			parts = append(parts, metaLabel(f)+": "+v)
		}
	}
	return strings.Join(parts, " | ")
}

// Layout arranges records into document blocks, one section per record in
// order. Options are deduplicated again so hand-built records render the
// same as parsed ones.
func Layout(title string, records []tagged.Record) []Block {
	var blocks []Block
	if title != "" {
		blocks = append(blocks, Block{Kind: KindDocTitle, Text: title})
	}

	for i, r := range records {
		blocks = append(blocks, Block{Kind: KindHeading, Text: fmt.Sprintf("Question %d", i+1)})

		if r.Title != "" {
			blocks = append(blocks, Block{Kind: KindSubheading, Text: r.Title})
		}
		if r.Description != "" {
			blocks = append(blocks, Block{Kind: KindNote, Text: r.Description})
		}
		if r.Question != "" {
			blocks = append(blocks, Block{Kind: KindText, Text: r.Question})
		}
		if r.Instruction != "" {
			blocks = append(blocks, Block{Kind: KindNote, Text: "Instruction: " + r.Instruction})
		}
		if meta := MetadataLine(r); meta != "" {
			blocks = append(blocks, Block{Kind: KindMeta, Text: meta})
		}

		seen := make(map[string]struct{}, len(r.Options))
		for _, o := range r.Options {
			if _, dup := seen[o]; dup {
				continue
			}
			seen[o] = struct{}{}
			blocks = append(blocks, Block{Kind: KindOption, Text: o, Correct: r.IsCorrect(o)})
		}

		if r.Explanation != "" {
			blocks = append(blocks, Block{Kind: KindNote, Text: "Explanation: " + r.Explanation})
		}
		blocks = append(blocks, Block{Kind: KindSpacer})
	}
	return blocks
}
