package ai

import "strings"

const proposalSchema = `{
  "command": "<the exact shell command line>",
  "explanation": "<one or two sentences on what it does>",
  "arguments": [{"arg": "<token>", "reason": "<why it is there>"}],
  "dangerLevel": <integer 1-5, 1 harmless, 5 destructive>
}`

// synthesisPrompt builds the system prompt for command synthesis. When the
// backend cannot constrain output natively, the schema discipline is pushed
// into the prompt itself.
func synthesisPrompt(sysDesc string, structured bool) string {
	var b strings.Builder

	b.WriteString("You translate a user's request into a single shell command for this system: ")
	b.WriteString(sysDesc)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Prefer non-destructive or dry-run variants when they satisfy the request.\n")
	b.WriteString("- Never pipe downloaded content into a shell interpreter.\n")
	b.WriteString("- Never redirect output to raw block devices.\n")
	b.WriteString("- If the request is inherently destructive, still answer it, and set dangerLevel honestly instead of refusing.\n")
	b.WriteString("\nRespond with a JSON object of exactly these fields:\n")
	b.WriteString(proposalSchema)
	b.WriteString("\n")
	if !structured {
		b.WriteString("\nReply with ONLY the JSON object. No prose, no markdown, no code fences.\n")
	}

	return b.String()
}

// AskPrompt is the system prompt for the one-shot ask command.
const AskPrompt = "You are a concise terminal assistant. Answer the user's question in plain text suitable for a terminal. Do not propose running commands yourself."

// ChatPrompt is the system prompt for the interactive chat command.
const ChatPrompt = "You are RoriShell, a terminal assistant. Keep answers short and practical. Plain text only."
