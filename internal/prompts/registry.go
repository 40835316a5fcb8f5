// Package prompts holds the fixed system instruction and prompt builder
// for each task type.
package prompts

import (
	"fmt"
	"strings"
)

// TaskType identifies one of the content generation tasks.
type TaskType string

const (
	TaskExplain       TaskType = "explain"
	TaskGenerateQuiz  TaskType = "generate_quiz"
	TaskTeachingNotes TaskType = "generate_teaching_notes"
)

// Template pairs a task's system instruction with its prompt builder.
// Build is pure: the same request always yields the same prompt.
type Template struct {
	Task   TaskType
	System string
	Build  func(TaskRequest) string
}

var registry = map[TaskType]Template{
	TaskExplain: {
		Task:   TaskExplain,
		System: explainSystem,
		Build:  buildExplainPrompt,
	},
	TaskGenerateQuiz: {
		Task:   TaskGenerateQuiz,
		System: quizSystem,
		Build:  buildQuizPrompt,
	},
	TaskTeachingNotes: {
		Task:   TaskTeachingNotes,
		System: teachingNotesSystem,
		Build:  buildTeachingNotesPrompt,
	},
}

// Lookup returns the template for a task type.
func Lookup(task TaskType) (Template, bool) {
	t, ok := registry[task]
	return t, ok
}

// MustLookup is Lookup for task types known at compile time.
func MustLookup(task TaskType) Template {
	t, ok := registry[task]
	if !ok {
		panic(fmt.Sprintf("prompts: unknown task type %q", task))
	}
	return t
}

// Tasks lists every task type in a stable order.
func Tasks() []TaskType {
	return []TaskType{TaskExplain, TaskGenerateQuiz, TaskTeachingNotes}
}

const explainSystem = `You are an educational assistant specialized in explaining complex topics to students.
Follow these guidelines:
1. Start with a clear, grade-appropriate definition
2. Break down complex concepts into digestible parts
3. Make sure to include common formulas or similar knowledge if exists.
4. Use relevant real-world examples
5. Address common misconceptions
6. Include 2-3 key takeaways
7. Add suggested further reading or exploration topics`

const quizSystem = `You are a professional quiz generator for students. Create balanced assessments that:
1. Test different cognitive levels (recall, understanding, application)
2. Make the students use their knowledge they learnt in that topic and ask challenging questions.
3. Provide clear, educational explanations
4. Include difficulty-appropriate distractors for multiple choice

IMPORTANT: You must format your response as valid JSON following this exact structure:
{
    "questions": [
        {
            "type": "multiple_choice", // or "open_ended" or "true_false"
            "question": "question text",
            "correct_answer": "answer",
            "options": ["option1", "option2", "option3", "option4"], // only for multiple_choice and true_false
            "explanation": "explanation text"
        }
    ]
}
Do not include any other text outside of this JSON structure.`

const teachingNotesSystem = `You are a professional curriculum designer for teachers to use in their lectures. Create comprehensive teaching notes that include:
1. Learning objectives
2. Key concepts and definitions
3. Suggested teaching activities and timings
4. Discussion questions and prompts
5. Common misconceptions and how to address them
6. Assessment strategies
7. Differentiation suggestions for different learning levels`

func buildExplainPrompt(req TaskRequest) string {
	req = req.WithDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Grade Level: %s\n", req.GradeLevel)
	b.WriteString("\nPlease provide a comprehensive explanation following the structure above.")
	return b.String()
}

func buildQuizPrompt(req TaskRequest) string {
	req = req.WithDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %s difficulty quiz about %s with %d questions.\n",
		req.Difficulty, req.Topic, req.NumQuestions)
	fmt.Fprintf(&b, "Questions should be of type: %s\n", strings.Join(req.QuestionTypes, ", "))
	b.WriteString(`For true/false questions, provide only two options: "True" and "False".` + "\n")
	b.WriteString("For open-ended questions, do not provide options but include a clear correct answer.\n")
	b.WriteString("\nRemember to return ONLY valid JSON following the specified structure.")
	return b.String()
}

func buildTeachingNotesPrompt(req TaskRequest) string {
	req = req.WithDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, "Create detailed teaching notes for a %s lesson on %s.\n", req.Duration, req.Topic)
	b.WriteString("Include suggestions for both in-person and online teaching modalities.")
	return b.String()
}
