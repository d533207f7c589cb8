package questiongen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrNoBaseQuestions is returned when the input file holds an empty list.
var ErrNoBaseQuestions = errors.New("no base questions")

const baseQuestionsSchemaURL = "schema://base-questions.json"

const baseQuestionsSchema = `{
	"type": "array",
	"items": {"type": "string"}
}`

var compiledBaseQuestionsSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(baseQuestionsSchema))
	if err != nil {
		return nil, fmt.Errorf("parse base questions schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(baseQuestionsSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add base questions schema: %w", err)
	}
	return c.Compile(baseQuestionsSchemaURL)
})

// LoadBaseQuestions reads a JSON array of base question strings from path.
func LoadBaseQuestions(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read base questions: %w", err)
	}
	return ParseBaseQuestions(data)
}

// ParseBaseQuestions decodes and validates a JSON array of strings.
func ParseBaseQuestions(data []byte) ([]string, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid base questions JSON: %w", err)
	}

	schema, err := compiledBaseQuestionsSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("base questions must be a JSON array of strings: %w", err)
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode base questions: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoBaseQuestions
	}
	return items, nil
}
