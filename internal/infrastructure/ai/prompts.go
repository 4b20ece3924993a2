package ai

import "fmt"

// TransformSystemPrompt pins providers to returning only the transformed
// text, with no preamble.
const TransformSystemPrompt = "You are a helpful writing assistant. Respond only with the transformed text, no explanations or preamble."

const (
	polishPrompt = `Polish the following HTML content for clarity and brevity. Rules:
1. PRESERVE all HTML tags exactly as they are (<p>, <ul>, <ol>, <li>, <strong>, <em>, etc.).
2. Only modify the text content inside the tags - do not change, remove, or add any HTML tags.
3. Polish each paragraph or list item individually - do not merge or restructure.
4. Remove unnecessary words and improve clarity within each element.
5. Keep the core meaning intact.
6. Return ONLY the polished HTML with no explanations or markdown.

HTML to polish:

%s`

	summarizeNotePrompt = `Summarize the following note content. The note contains text blocks and diagram elements from a visual canvas.

Rules:
1. Create a concise summary that captures the main ideas and key points.
2. If there are diagram elements (shapes with labels), incorporate their meaning into the summary.
3. Preserve the logical flow and relationships between ideas.
4. Use clear, professional language.
5. Format the summary as HTML: use <p> for paragraphs, <ul>/<li> for bullet points, <strong> for emphasis.
6. Keep the summary concise but comprehensive.
7. Return ONLY raw HTML. Do NOT wrap in code blocks, do NOT use ` + "```" + ` or ` + "```" + `html, do NOT include any markdown.

Note content:

%s`
)

var prompts = map[string]string{
	"rewrite":        "Rewrite the following text for clarity and better readability. Keep the same meaning but improve the writing:\n\n%s",
	"summarize":      "Summarize the following text concisely while preserving the key points:\n\n%s",
	"expand":         "Expand on the following idea with more detail and explanation:\n\n%s",
	"bullets":        "Convert the following text into clear, organized bullet points:\n\n%s",
	"insights":       "Generate key insights and follow-up questions based on the following text:\n\n%s",
	"tasks":          "Extract actionable tasks from the following text and format them as a task list:\n\n%s",
	"polish":         polishPrompt,
	"summarize_note": summarizeNotePrompt,
}

// PromptFor builds the user prompt for the given action. Unknown actions fall
// back to a generic instruction instead of erroring.
func PromptFor(action, text, extra string) string {
	template, ok := prompts[action]

	var prompt string
	if ok {
		prompt = fmt.Sprintf(template, text)
	} else {
		prompt = "Process the following text: " + text
	}

	if extra != "" {
		prompt = "Context: " + extra + "\n\n" + prompt
	}
	return prompt
}

// ActionDescriptor describes one entry of the public action catalog.
type ActionDescriptor struct {
	ID          string
	Name        string
	Description string
}

func AvailableActions() []ActionDescriptor {
	return []ActionDescriptor{
		{ID: "polish", Name: "Polish", Description: "Improve clarity and brevity"},
		{ID: "rewrite", Name: "Rewrite for Clarity", Description: "Improve readability while keeping the same meaning"},
		{ID: "summarize", Name: "Summarize", Description: "Create a concise summary"},
		{ID: "expand", Name: "Expand", Description: "Add more detail and explanation"},
		{ID: "bullets", Name: "Convert to Bullets", Description: "Format as bullet points"},
		{ID: "insights", Name: "Generate Insights", Description: "Extract key insights and questions"},
		{ID: "tasks", Name: "Extract Tasks", Description: "Convert to actionable task list"},
	}
}
