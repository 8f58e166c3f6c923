package gemini

import (
	"strings"

	"github.com/dreamlog-app/dreamlog/internal/application/insight/analyzer"
)

const promptHeader = `You are a thoughtful, supportive dream analyst. Analyze this dream with empathy and insight.`

const promptFormat = `Provide your analysis in the following JSON format:
{
  "summary": "A brief, high-level summary of the dream (2-3 sentences)",
  "emotionalTone": "Identification and exploration of the emotional tone and feelings present in the dream",
  "symbolicInterpretation": "Thoughtful exploration of symbols, metaphors, and their potential meanings (framed as reflection prompts, not definitive answers)",
  "fullAnalysis": "A comprehensive analysis combining all aspects with gentle suggestions for how the dream might relate to waking life"
}

Guidelines:
- Be supportive, calm, and introspective in tone
- Avoid clinical, diagnostic, or deterministic language
- Frame interpretations as possibilities and reflection prompts, not facts
- Be respectful of the deeply personal nature of dreams
- Focus on self-discovery and personal growth
- Acknowledge that dreams are subjective and open to multiple interpretations`

// BuildPrompt assembles the analysis prompt. Mood and tag lines are omitted when empty.
func BuildPrompt(req analyzer.Request) string {
	var sb strings.Builder
	sb.WriteString(promptHeader)
	sb.WriteString("\n\nDream: ")
	sb.WriteString(req.DreamText)
	sb.WriteString("\n")
	if mood := strings.TrimSpace(req.Mood); mood != "" {
		sb.WriteString("Mood: ")
		sb.WriteString(mood)
		sb.WriteString("\n")
	}
	if len(req.Tags) > 0 {
		sb.WriteString("Tags: ")
		sb.WriteString(strings.Join(req.Tags, ", "))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(promptFormat)
	return sb.String()
}
