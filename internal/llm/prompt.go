package llm

import (
	"fmt"
	"strings"

	"github.com/Veraticus/denials/internal/model"
)

const systemPrompt = "You are a medical billing specialist who analyzes insurance claim denial notes. " +
	"You categorize each denial and extract the payer, CPT procedure codes, and the next action " +
	"the billing team should take. You MUST respond with valid JSON only. Do not include any " +
	"explanatory text, markdown formatting, or commentary before or after the JSON."

// BuildPrompt returns the system instruction and the user instruction for a
// single denial note. The note is embedded verbatim.
func BuildPrompt(denialNote string) (system, user string) {
	quoted := make([]string, 0, len(model.AllCategories()))
	for _, c := range model.AllCategories() {
		quoted = append(quoted, fmt.Sprintf("%q", c))
	}

	user = fmt.Sprintf(`Classify the following claim denial note.

Denial note:
"""
%s
"""

Return a JSON object with exactly this shape:
{
  "categories": [<one or more of: %s>],
  "extracted_fields": {
    "payer": <insurance payer name as a string, or null if not mentioned>,
    "cpt_codes": [<CPT procedure codes mentioned in the note, as strings; empty array if none>],
    "suggested_action": <short recommended next step as a string, or null if unclear>
  }
}

Rules:
- Use only the category values listed above, spelled exactly as shown.
- List categories in order of relevance, most relevant first.
- Always include all three keys in extracted_fields, even when the value is null.`,
		denialNote,
		strings.Join(quoted, ", "))

	return systemPrompt, user
}

// BuildMessages returns the system and user messages, in that order.
func BuildMessages(denialNote string) []Message {
	system, user := BuildPrompt(denialNote)
	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: user},
	}
}
