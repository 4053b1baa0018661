package convo

import "fmt"

// TaskSentinel delimits the conversational reply from an embedded task
// description in Responder output. Everything after the first occurrence is
// the task, everything before is what the user sees.
const TaskSentinel = "TASK:"

// Task-injection eligibility: wait until the conversation has warmed up, and
// never assign more than two tasks over the life of a session.
const (
	minTurnsBeforeTask = 4
	maxTasksPerSession = 2
)

const greetingPrompt = `You are an English conversation practice assistant for %s level English learners. Start with a friendly greeting and ask a simple question to begin the conversation. Your Name is Sam`

const taskFeedbackPrompt = `You are an English conversation practice assistant for %s level English learners.
The user just completed a speaking task you assigned. Give positive feedback first, then 1-2 specific improvement suggestions.
Keep your response friendly, encouraging and concise. Don't assign a new task yet.`

const taskDirective = `
In your response, include a speaking task for the user by adding "TASK:" followed by the task description.
For Beginner: Simple tasks like "Describe your family" or "Talk about your daily routine"
For Intermediate: Moderate tasks like "Explain the plot of your favorite movie" or "Describe a problem in your city"
For Advanced: Complex tasks like "Argue for or against remote work" or "Discuss the impact of AI on society"
`

const basePrompt = `You are an English conversation practice assistant for %s level English learners.
Adjust your vocabulary and sentence complexity to match their %s level.

Beginner: Use simple vocabulary, short sentences, and basic grammar.
Intermediate: Use moderate vocabulary, varied sentence structures, and introduce some idioms.
Advanced: Use sophisticated vocabulary, complex sentences, idioms, and discuss abstract topics.

Keep the conversation natural, engaging and flowing. Ask follow-up questions to encourage the user to speak more.
%s

Important:
- Keep your responses concise (3-5 sentences)
- Don't summarize the conversation
- Don't mention that you're an AI unless the user asks
- Focus on having a natural conversation`

// GreetingPrompt builds the instruction for the opening assistant turn after
// level selection.
func GreetingPrompt(level Level) string {
	return fmt.Sprintf(greetingPrompt, level)
}

// ComposePrompt builds the system instruction for the next assistant turn.
// Pure function of its inputs.
//
// taskJustCompleted wins over everything else: the Responder is told to give
// feedback on the finished task and to hold off assigning a new one this
// turn. Otherwise the level-tiered base prompt is used, with the
// task-injection directive appended when the conversation is long enough and
// the lifetime task cap has not been reached.
func ComposePrompt(level Level, turnCount int, taskJustCompleted bool, tasksEverAssigned int) string {
	if taskJustCompleted {
		return fmt.Sprintf(taskFeedbackPrompt, level)
	}

	directive := ""
	if ShouldOfferTask(turnCount, tasksEverAssigned) {
		directive = taskDirective
	}
	return fmt.Sprintf(basePrompt, level, level, directive)
}

// ShouldOfferTask is the task-injection eligibility predicate.
func ShouldOfferTask(turnCount, tasksEverAssigned int) bool {
	return turnCount >= minTurnsBeforeTask && tasksEverAssigned < maxTasksPerSession
}
