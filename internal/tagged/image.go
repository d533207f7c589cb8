package tagged

import (
	"fmt"
	"regexp"
	"strings"
)

// imageLine matches the first "@image <prompt>" line of a block. The marker is
// case-sensitive and must start the line.
var imageLine = regexp.MustCompile(`(?m)^@image[ \t]+(.+)$`)

// ImageRequest pairs the image prompt of one block with its output name.
// The @image tag is not part of Record; it is read from the raw block.
type ImageRequest struct {
	// Position is the 1-based index of the block within its batch.
	Position int

	// Prompt is the image description, or empty when the block has none.
	Prompt string

	// Name is the deterministic artifact name, e.g. "question7".
	Name string
}

// Wanted reports whether an image should be generated for the block.
func (r ImageRequest) Wanted() bool {
	return r.Prompt != ""
}

// ExtractImagePrompt scans raw for its first @image line.
func ExtractImagePrompt(raw string, position int) ImageRequest {
	req := ImageRequest{
		Position: position,
		Name:     fmt.Sprintf("question%d", position),
	}
	if m := imageLine.FindStringSubmatch(raw); m != nil {
		req.Prompt = strings.TrimSpace(m[1])
	}
	return req
}

// ExtractImagePrompts returns one request per block, positions starting at 1.
func ExtractImagePrompts(raws []string) []ImageRequest {
	out := make([]ImageRequest, len(raws))
	for i, raw := range raws {
		out[i] = ExtractImagePrompt(raw, i+1)
	}
	return out
}
