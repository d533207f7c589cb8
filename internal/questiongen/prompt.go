package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write math assessment questions. You reply only in the tagged question format you are given, with no commentary before or after it.`

const taskRules = `Task:
- Create a new question with the SAME difficulty and format.
- Change the context and numbers, but keep the structure.
- Preserve LaTeX formulas if any.
- If the question needs a figure, add one @image line describing it. Otherwise omit @image.
- Output EXACTLY the following format without any extra text or explanation:`

const outputFormat = `@title <Assessment title>
@description <Assessment description>

@question <Write your question here>
@instruction <Write instruction here>
@difficulty <easy|moderate|hard>
@subject <Choose subject from curriculum>
@unit <Choose unit from curriculum>
@topic <Choose topic from curriculum>
@plusmarks 1
@image <Image description, only if the question needs a figure>

@option <Option 1>
@option <Option 2>
@@option <Correct Option>
@option <Option 4>

@explanation <Write your question explanation here>`

// BuildPrompt returns the generation prompt for one base question.
func BuildPrompt(base string) string {
	var b strings.Builder

	b.WriteString("You are given this base math question:\n\n")
	b.WriteString(strings.TrimSpace(base))
	b.WriteString("\n\n")
	b.WriteString(taskRules)
	b.WriteString("\n\n")
	b.WriteString(outputFormat)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Use the curriculum hierarchy (subject > unit > topic) exactly as provided:\n%s\n\n",
		curriculumText(Curriculum))
	b.WriteString("Remember: NO extra commentary or explanation outside the tagged format.")

	return b.String()
}
