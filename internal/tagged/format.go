package tagged

import "strings"

// Format writes r back as a tagged-text block in the layout the generator is
// asked to produce. Empty scalar fields are omitted; marks is always written.
// The option equal to r.Answer is written with the @@option marker.
func Format(r Record) string {
	var b strings.Builder

	writeTag := func(f Field) {
		if v := r.Get(f); v != "" || f == FieldMarks {
			if v == "" {
				v = DefaultMarks
			}
			b.WriteString("@" + f.Tag() + " " + v + "\n")
		}
	}

	writeTag(FieldTitle)
	writeTag(FieldDescription)
	b.WriteString("\n")
	for _, f := range []Field{FieldQuestion, FieldInstruction, FieldDifficulty, FieldSubject, FieldUnit, FieldTopic, FieldMarks} {
		writeTag(f)
	}

	if len(r.Options) > 0 {
		b.WriteString("\n")
		for _, o := range r.Options {
			if r.IsCorrect(o) {
				b.WriteString("@@option " + o + "\n")
			} else {
				b.WriteString("@option " + o + "\n")
			}
		}
	}

	if r.Explanation != "" {
		b.WriteString("\n")
		writeTag(FieldExplanation)
	}

	return strings.TrimSpace(b.String())
}
