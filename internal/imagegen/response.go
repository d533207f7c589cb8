package imagegen

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// imageRequest is the JSON body sent to the generateImage endpoint.
type imageRequest struct {
	Prompt         string      `json:"prompt"`
	ImageConfig    imageConfig `json:"imageConfig"`
	CandidateCount int         `json:"candidateCount"`
}

type imageConfig struct {
	Height int `json:"height"`
	Width  int `json:"width"`
}

type imageResponse struct {
	Results []struct {
		Image struct {
			ImageBytes string `json:"imageBytes"`
		} `json:"image"`
	} `json:"results"`
}

const responseSchemaURL = "schema://image-response.json"

// responseSchema requires at least one result carrying a non-empty payload.
const responseSchema = `{
	"type": "object",
	"required": ["results"],
	"properties": {
		"results": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["image"],
				"properties": {
					"image": {
						"type": "object",
						"required": ["imageBytes"],
						"properties": {
							"imageBytes": {"type": "string", "minLength": 1}
						}
					}
				}
			}
		}
	}
}`

var compiledResponseSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(responseSchema))
	if err != nil {
		return nil, fmt.Errorf("parse response schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(responseSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add response schema: %w", err)
	}
	return c.Compile(responseSchemaURL)
})

// decodeImage validates a response body and returns the decoded image bytes
// of its first result.
func decodeImage(body []byte) ([]byte, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledResponseSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("unexpected response shape: %w", err)
	}

	var resp imageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	data, err := base64.StdEncoding.DecodeString(resp.Results[0].Image.ImageBytes)
	if err != nil {
		return nil, fmt.Errorf("decode image bytes: %w", err)
	}
	return data, nil
}
