package curation

import (
	"encoding/json"
	"regexp"
	"strings"
)

// maxActivationIdeas bounds the enrichment idea list
const maxActivationIdeas = 4

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// Relevance interprets free-form model output as a boolean decision.
// The text is lower-cased and tested for the substrings "true" / "false";
// anything else is ambiguous and resolves to not-relevant.
func Relevance(text string) (relevant bool, ambiguous bool) {
	raw := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.Contains(raw, "true"):
		return true, false
	case strings.Contains(raw, "false"):
		return false, false
	default:
		return false, true
	}
}

// ExtractJSONObject pulls the first top-level brace-delimited JSON object
// out of free text, tolerating leading/trailing prose and markdown code
// fences. Returns false when no balanced object is found.
func ExtractJSONObject(text string) (string, bool) {
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// parseEnrichment decodes an enrichment payload from free text. Missing or
// wrong-typed fields are omitted rather than failing; a completely
// unparseable payload yields the zero value.
func parseEnrichment(text string) Enrichment {
	var e Enrichment

	obj, ok := ExtractJSONObject(text)
	if !ok {
		return e
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(obj), &fields); err != nil {
		return e
	}

	if raw, ok := fields["why_it_matters"]; ok {
		var why string
		if err := json.Unmarshal(raw, &why); err == nil {
			e.WhyItMatters = strings.TrimSpace(why)
		}
	}

	if raw, ok := fields["activation_ideas"]; ok {
		var ideas []string
		if err := json.Unmarshal(raw, &ideas); err == nil {
			for _, idea := range ideas {
				idea = strings.TrimSpace(idea)
				if idea == "" {
					continue
				}
				e.ActivationIdeas = append(e.ActivationIdeas, idea)
				if len(e.ActivationIdeas) == maxActivationIdeas {
					break
				}
			}
		}
	}

	return e
}
