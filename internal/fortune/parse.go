package fortune

import (
	"encoding/json"
	"fmt"
	"strings"

	"lucklens/internal/domain"
)

// generatedPayload is the wire shape the model is instructed to return.
type generatedPayload struct {
	Fortune *domain.FortuneItem `json:"fortune"`
	Proverb string              `json:"proverb"`
}

// CleanResponse strips markdown code-fence wrappers the model sometimes adds
// around its JSON output.
func CleanResponse(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// ExtractJSON returns the first top-level JSON object in text, found by brace
// matching. String literals are honored so braces inside values don't break
// the balance.
func ExtractJSON(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], nil
				}
			}
		}
	}
	return "", fmt.Errorf("unbalanced JSON object in response")
}

// ParseContent cleans, extracts, unmarshals, and structurally validates a
// model response. Any missing or malformed required field is a parse failure.
func ParseContent(text string) (*domain.GeneratedContent, error) {
	raw, err := ExtractJSON(CleanResponse(text))
	if err != nil {
		return nil, err
	}

	var payload generatedPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("unmarshal fortune payload: %w", err)
	}
	if payload.Fortune == nil {
		return nil, fmt.Errorf("missing required field: fortune")
	}
	if strings.TrimSpace(payload.Proverb) == "" {
		return nil, fmt.Errorf("missing required field: proverb")
	}

	content := &domain.GeneratedContent{
		Fortunes: []domain.FortuneItem{*payload.Fortune},
		Proverbs: []string{payload.Proverb},
	}
	if err := content.Validate(); err != nil {
		return nil, err
	}
	return content, nil
}
