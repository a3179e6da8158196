package essay

import (
	"regexp"
	"strings"
)

// DegradedMarker replaces the corrected text when a reply cannot be split.
const DegradedMarker = "錯誤：模型回應格式異常"

const sectionDelimiter = "\n\n"

// Sections is the parsed reply: corrected essay, error analysis and suggestions.
type Sections struct {
	Corrected   string
	Analysis    string
	Suggestions string
}

// Degraded returns the placeholder written when a reply is malformed.
// No partial content survives.
func Degraded() Sections {
	return Sections{Corrected: DegradedMarker}
}

// IsDegraded reports whether s is the malformed-reply placeholder.
func (s Sections) IsDegraded() bool {
	return s == Degraded()
}

// Clean strips section labels from every field.
func (s Sections) Clean() Sections {
	return Sections{
		Corrected:   CleanText(s.Corrected),
		Analysis:    CleanText(s.Analysis),
		Suggestions: CleanText(s.Suggestions),
	}
}

// SplitPositional splits reply on blank lines and assigns the first three
// segments in order. Extra segments are dropped; fewer than three yields Degraded.
func SplitPositional(reply string) Sections {
	parts := strings.Split(strings.TrimSpace(reply), sectionDelimiter)
	if len(parts) < 3 {
		return Degraded()
	}
	return Sections{
		Corrected:   parts[0],
		Analysis:    parts[1],
		Suggestions: parts[2],
	}
}

// SplitKeyed locates each label and takes the text after it up to the next
// line starting with "[" or the end of the reply. Unless all three labels are
// present it falls back to SplitPositional.
func SplitKeyed(reply string) Sections {
	corrected, ok1 := extractSection(reply, LabelCorrected)
	analysis, ok2 := extractSection(reply, LabelAnalysis)
	suggestions, ok3 := extractSection(reply, LabelSuggestions)
	if !ok1 || !ok2 || !ok3 {
		return SplitPositional(reply)
	}
	return Sections{
		Corrected:   corrected,
		Analysis:    analysis,
		Suggestions: suggestions,
	}
}

// Split dispatches to SplitKeyed or SplitPositional.
func Split(reply string, keyed bool) Sections {
	if keyed {
		return SplitKeyed(reply)
	}
	return SplitPositional(reply)
}

func extractSection(text, label string) (string, bool) {
	i := strings.Index(text, label)
	if i < 0 {
		return "", false
	}
	rest := text[i+len(label):]
	if end := strings.Index(rest, "\n["); end >= 0 {
		rest = rest[:end]
	}
	out := strings.TrimSpace(rest)
	return out, out != ""
}

var labelPattern = regexp.MustCompile(`\[.*?\]`)

// CleanText removes every bracketed span such as "[修正文]" and trims the result.
func CleanText(s string) string {
	return strings.TrimSpace(labelPattern.ReplaceAllString(s, ""))
}
