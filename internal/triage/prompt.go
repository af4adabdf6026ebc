package triage

import (
	"encoding/json"
	"fmt"
	"strings"

	"locali/internal/port"
)

// Temperature used for every classification request.
const Temperature = 0.1

// SystemInstruction is the fixed moderation instruction sent to every provider.
const SystemInstruction = `You are a content moderator for a local business directory.
You will receive a listing's name, description and the category it was submitted under.
Flag the listing if it is off-topic for that category, offensive, sexually explicit, hateful, a scam, or spam.
Legitimate small businesses, makers and service providers must be marked safe.

Return ONLY a JSON object with no markdown formatting and no explanation:
{"safe": true|false, "reason": "short reason when not safe, otherwise empty"}`

// BuildUserMessage renders the listing content for classification.
func BuildUserMessage(input port.ClassifyInput) string {
	return fmt.Sprintf("Category: %s\nName: %s\nDescription: %s",
		input.Category, input.Name, input.Description)
}

// ParseClassification decodes the JSON verdict produced by a model. The
// "safe" field is required.
func ParseClassification(text string) (safe bool, reason string, err error) {
	text = stripCodeFence(text)

	var parsed struct {
		Safe   *bool  `json:"safe"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return false, "", fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, Truncate(text, 300))
	}
	if parsed.Safe == nil {
		return false, "", fmt.Errorf("LLM JSON output missing \"safe\" field (raw: %s)", Truncate(text, 300))
	}
	return *parsed.Safe, strings.TrimSpace(parsed.Reason), nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// Truncate shortens s to maxLen bytes for log and error output.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
