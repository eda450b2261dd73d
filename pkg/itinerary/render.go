package itinerary

import "strings"

// BlockKind discriminates rendered display blocks.
type BlockKind string

const (
	BlockImage  BlockKind = "image"
	BlockText   BlockKind = "text"
	BlockSpacer BlockKind = "spacer"
)

// Block is one rendered display unit of an authored text: an inline image
// with its accessible label, a text run, or a fixed-height spacer for a
// blank source line.
type Block struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text,omitempty"`
	Alt  string    `json:"alt,omitempty"`
	URL  string    `json:"url,omitempty"`
}

// Render converts authored text into display blocks, line by line. It never
// fails: lines that match nothing render as literal text.
func Render(text string) []Block {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var blocks []Block
	for _, line := range strings.Split(text, "\n") {
		if m := imageRe.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Block{Kind: BlockImage, Alt: m[1], URL: m[2]})
			continue
		}
		if strings.TrimSpace(line) == "" {
			blocks = append(blocks, Block{Kind: BlockSpacer})
			continue
		}
		blocks = append(blocks, Block{Kind: BlockText, Text: line})
	}
	return blocks
}
