package augment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xeipuuv/gojsonschema"

	"github.com/sells-group/grant-verdict/internal/model"
)

// proposalSchema constrains the JSON an LLM may return. Range checks on
// scores are left to the policy, which clamps rather than rejects.
const proposalSchema = `{
  "type": "object",
  "properties": {
    "scores": {
      "type": "object",
      "additionalProperties": {"type": "number"}
    },
    "composite_score": {"type": ["number", "null"]},
    "recommendation": {"type": "string"},
    "reasoning": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "key_insights": {"type": "array", "items": {"type": "string"}},
    "red_flags": {"type": "array", "items": {"type": "string"}},
    "confidence_notes": {"type": "string"},
    "actionable_next_step": {"type": "string"},
    "success_probability_range": {"type": ["string", "null"]},
    "decision_gates": {"type": "array", "items": {"type": "string"}},
    "pattern_knowledge": {"type": ["string", "null"]},
    "opportunity_cost": {"type": ["string", "null"]},
    "confidence_index": {"type": ["number", "null"]}
  },
  "required": ["recommendation"]
}`

var schemaLoader = gojsonschema.NewStringLoader(proposalSchema)

// ErrNoJSON is returned when a response contains no JSON object.
var ErrNoJSON = eris.New("augment: no JSON object in response")

// ParseProposal extracts the first JSON object from text, checks it against
// the proposal schema and decodes it.
func ParseProposal(text string) (*model.Proposal, error) {
	raw, ok := extractFirstJSONObject(text)
	if !ok {
		return nil, ErrNoJSON
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, eris.Wrap(err, "augment: validate proposal")
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			msgs = append(msgs, fmt.Sprintf("%s: %s", field, desc.Description()))
		}
		return nil, eris.Errorf("augment: proposal does not match schema: %s", strings.Join(msgs, "; "))
	}

	var p model.Proposal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, eris.Wrap(err, "augment: decode proposal")
	}
	return &p, nil
}

// extractFirstJSONObject returns the first balanced {...} in s, skipping
// braces inside strings.
func extractFirstJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
