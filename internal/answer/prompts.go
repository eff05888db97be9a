package answer

import "fmt"

// 输出 token 预算
const (
	classifyMaxTokens    = 40
	shortAnswerMaxTokens = 200
	longAnswerMaxTokens  = 600
	summaryMaxTokens     = 120
)

const (
	classifySystemPrompt    = "You ONLY return JSON."
	shortAnswerSystemPrompt = "Give a short, clear answer in 1–3 sentences."
	longAnswerSystemPrompt  = "Give a long, structured answer with headings and bullet points."
	summarySystemPrompt     = "Summarize clearly."
)

func classifyPrompt(question string) string {
	return "Return ONLY JSON.\n" +
		"Decide if the user wants a SHORT answer (1–3 sentences) or LONG answer.\n" +
		fmt.Sprintf("Question: %s\n\n", question) +
		`{"answer_type":"short","confidence":0.8}`
}

func answerPrompt(question, context string) string {
	return fmt.Sprintf("Question: %s\n\nContext:\n%s\n\nAnswer:", question, context)
}

func summaryPrompt(answer string) string {
	return fmt.Sprintf("Summarize this in 1–3 sentences:\n\n%s", answer)
}
