package gemini

// Prompt templates are embedded rather than loaded from disk so the binary
// is self-contained. Both demand strict JSON output matching the schemas in
// types.go.

const summaryPromptTemplate = `You are a study assistant. Summarize the note
below in two to four sentences, keeping the key facts a student would need
to review. Respond with JSON only, in the form {"summary": "..."}.

Title: {{.Title}}

{{.Content}}`

const cardsPromptTemplate = `You are a study assistant. Read the note below
and propose up to five flashcards covering its most important facts. Each
card needs a short question, a concise answer, and a difficulty of "easy",
"medium" or "hard". Respond with JSON only, in the form
{"cards": [{"question": "...", "answer": "...", "difficulty": "..."}]}.

Title: {{.Title}}

{{.Content}}`
