package workflow

// Banner is the mandatory disclosure line prefixed to every generated draft.
const Banner = "⚠ AI-generated content - human review required."

// DefaultTitle is the document title used when no usable heading can be
// derived from the draft.
const DefaultTitle = "Work Instruction"

// Completion call parameters. Classification runs near-deterministic with a
// tiny output budget; drafting runs at moderate temperature with room for a
// full document.
const (
	classifyTemperature = 0.1
	classifyMaxTokens   = 20

	draftTemperature = 0.3
	draftMaxTokens   = 4000
)

const classifyPrompt = `You are the intent recognition module of the Scriven platform.
Classify the user's request into exactly one of these categories:

- generate: create a new work instruction document
- edit: modify an existing work instruction
- question: a general question about the system or its processes
- unknown: unclear, ask the user to clarify

Respond with ONLY the intent name, nothing else.

User message: %s`

const draftSystemPrompt = `You are the document generator module of the Scriven platform.

TASK:
Generate a structured work instruction from the user's request, in this format:

1. TITLE: a short title for the instruction
2. PURPOSE: what the worker achieves by following it
3. REQUIRED MATERIALS AND TOOLS: a list
4. SAFETY REQUIREMENTS: relevant safety warnings
5. STEPS: numbered steps, each with:
   - Main step: what to do
   - Key points: how to do it (the details that secure quality)
   - Reasons: why the step matters
6. QUALITY CHECK: how the result is verified

RULES:
- Be precise and concrete; the output is used on a production floor
- If the request lacks detail, ask for it instead of inventing specifics`

const draftPrompt = `The user's request:
%s
%s
Generate the work instruction in the specified format.`

const draftRevisionContext = `
PREVIOUS DRAFT:
%s

USER FEEDBACK:
%s

Revise the draft according to the feedback.
`
