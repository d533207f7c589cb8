package tagged

// DefaultMarks is the marks value of a record whose block carries no marks tag.
const DefaultMarks = "1"

// Record is the structured form of one tagged-text block.
type Record struct {
	Title       string
	Description string
	Question    string
	Instruction string
	Difficulty  string
	Subject     string
	Unit        string
	Topic       string
	Marks       string

	// Options holds the option texts in display order with duplicates removed.
	Options []string

	// Answer is the text of the option marked with @@option, or empty.
	// When non-empty it is always an element of Options.
	Answer string

	Explanation string
}

// NewRecord returns a record with every field at its default.
func NewRecord() Record {
	return Record{
		Marks:   DefaultMarks,
		Options: []string{},
	}
}

// IsCorrect reports whether option is the record's marked answer.
func (r Record) IsCorrect(option string) bool {
	return r.Answer != "" && option == r.Answer
}

// Field identifies one scalar field that a tag line can set.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldQuestion
	FieldInstruction
	FieldDifficulty
	FieldSubject
	FieldUnit
	FieldTopic
	FieldMarks
	FieldExplanation
)

// Fields lists the scalar fields in the order the generator emits them.
var Fields = []Field{
	FieldTitle,
	FieldDescription,
	FieldQuestion,
	FieldInstruction,
	FieldDifficulty,
	FieldSubject,
	FieldUnit,
	FieldTopic,
	FieldMarks,
	FieldExplanation,
}

// Tag returns the canonical tag name written for the field.
func (f Field) Tag() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldDescription:
		return "description"
	case FieldQuestion:
		return "question"
	case FieldInstruction:
		return "instruction"
	case FieldDifficulty:
		return "difficulty"
	case FieldSubject:
		return "subject"
	case FieldUnit:
		return "unit"
	case FieldTopic:
		return "topic"
	case FieldMarks:
		return "plusmarks"
	case FieldExplanation:
		return "explanation"
	}
	return ""
}

// lookupField resolves a lower-cased tag name against the known field set.
// "marks" is accepted as an alias of "plusmarks".
func lookupField(tag string) (Field, bool) {
	switch tag {
	case "title":
		return FieldTitle, true
	case "description":
		return FieldDescription, true
	case "question":
		return FieldQuestion, true
	case "instruction":
		return FieldInstruction, true
	case "difficulty":
		return FieldDifficulty, true
	case "subject":
		return FieldSubject, true
	case "unit":
		return FieldUnit, true
	case "topic":
		return FieldTopic, true
	case "plusmarks", "marks":
		return FieldMarks, true
	case "explanation":
		return FieldExplanation, true
	}
	return 0, false
}

// Get returns the value of a scalar field.
func (r *Record) Get(f Field) string {
	if p := r.field(f); p != nil {
		return *p
	}
	return ""
}

func (r *Record) set(f Field, value string) {
	if p := r.field(f); p != nil {
		*p = value
	}
}

func (r *Record) field(f Field) *string {
	switch f {
	case FieldTitle:
		return &r.Title
	case FieldDescription:
		return &r.Description
	case FieldQuestion:
		return &r.Question
	case FieldInstruction:
		return &r.Instruction
	case FieldDifficulty:
		return &r.Difficulty
	case FieldSubject:
		return &r.Subject
	case FieldUnit:
		return &r.Unit
	case FieldTopic:
		return &r.Topic
	case FieldMarks:
		return &r.Marks
	case FieldExplanation:
		return &r.Explanation
	}
	return nil
}
