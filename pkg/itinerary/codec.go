// Package itinerary converts between the authored day-plan text format and
// the structured step list kept on tour records for backward compatibility.
//
// The text is a sequence of independently classified lines, checked in this
// priority order: inline image `![alt](url)`, timed step `HH:MM: activity`,
// arrow sub-bullet `→ detail`, plain text. Blank lines are spacing only.
package itinerary

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Step is one flattened entry of the structured itinerary mirror. Exactly one
// of the shapes is populated per source line: Time+Activity for a timed line,
// Description for an arrow line, Activity alone for a plain line and Images
// for an image line. The raw text stays authoritative for display.
type Step struct {
	Time        string   `json:"time,omitempty"`
	Activity    string   `json:"activity,omitempty"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
}

const arrowPrefix = "→"

// defaultAlt labels images that were inserted without an explicit caption.
const defaultAlt = "Hình ảnh"

var (
	imageRe = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	timedRe = regexp.MustCompile(`^(\d{2}:\d{2}):\s*(.*)$`)
	clockRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Decode builds the structured step list from authored text. Every non-blank
// line yields its own step, in document order; arrow lines stay independent
// flattened entries rather than nesting under the preceding timed step, and
// image lines become standalone image-bearing steps at their position.
func Decode(text string) []Step {
	var steps []Step
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		switch {
		case imageRe.MatchString(trimmed):
			m := imageRe.FindStringSubmatch(trimmed)
			steps = append(steps, Step{Images: []string{m[2]}})
		case timedRe.MatchString(trimmed):
			m := timedRe.FindStringSubmatch(trimmed)
			steps = append(steps, Step{Time: m[1], Activity: strings.TrimSpace(m[2])})
		case strings.HasPrefix(trimmed, arrowPrefix):
			steps = append(steps, Step{Description: strings.TrimSpace(strings.TrimPrefix(trimmed, arrowPrefix))})
		default:
			steps = append(steps, Step{Activity: trimmed})
		}
	}
	return steps
}

// Encode synthesizes authored text from a structured step list. It is the
// inverse of Decode and used when opening records that predate the raw-text
// format: one timed line per step, one arrow line per description sentence,
// one image line per attached URL.
func Encode(steps []Step) string {
	var lines []string
	for _, step := range steps {
		switch {
		case step.Time != "" && step.Activity != "":
			lines = append(lines, fmt.Sprintf("%s: %s", FormatTime(step.Time), step.Activity))
		case step.Activity != "":
			lines = append(lines, step.Activity)
		}
		for _, sentence := range splitSentences(step.Description) {
			lines = append(lines, arrowPrefix+" "+sentence)
		}
		for _, url := range step.Images {
			lines = append(lines, fmt.Sprintf("![%s](%s)", defaultAlt, url))
		}
	}
	return strings.Join(lines, "\n")
}

var sentenceRe = regexp.MustCompile(`[.!?]\s+`)

func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var out []string
	rest := text
	for {
		loc := sentenceRe.FindStringIndex(rest)
		if loc == nil {
			break
		}
		out = append(out, strings.TrimSpace(rest[:loc[0]+1]))
		rest = rest[loc[1]:]
	}
	if s := strings.TrimSpace(rest); s != "" {
		out = append(out, s)
	}
	return out
}

// FormatTime normalizes a step time for display. A value already in HH:MM
// form passes through, a datetime value is reduced to its wall-clock
// hour:minute without timezone conversion, an empty value reads "N/A" and
// anything else passes through unchanged.
func FormatTime(value string) string {
	if value == "" {
		return "N/A"
	}
	if clockRe.MatchString(value) {
		return value
	}
	if strings.Contains(value, "T") {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
			if t, err := time.Parse(layout, value); err == nil {
				return t.Format("15:04")
			}
		}
	}
	return value
}
