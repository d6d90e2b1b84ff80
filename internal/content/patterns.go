package content

import "math/rand"

// Pattern is one sentence pattern for drilling.
type Pattern struct {
	ID       string
	Pattern  string
	Meaning  string
	Level    int
	Examples []Example
}

// Example pairs an English sentence with its Korean meaning.
type Example struct {
	English string
	Korean  string
}

// Patterns is the built-in drill set.
var Patterns = []Pattern{
	{
		ID:      "p1",
		Pattern: "I'm trying to...",
		Meaning: "~하려고 노력 중이야",
		Level:   1,
		Examples: []Example{
			{English: "I'm trying to learn English.", Korean: "영어 배우려고 노력 중이야."},
			{English: "I'm trying to focus.", Korean: "집중하려고 노력 중이야."},
			{English: "I'm trying to fix this.", Korean: "이거 고치려고 노력 중이야."},
		},
	},
	{
		ID:      "p2",
		Pattern: "Do you mind if...",
		Meaning: "내가 ~해도 괜찮을까?",
		Level:   2,
		Examples: []Example{
			{English: "Do you mind if I sit here?", Korean: "여기 앉아도 될까?"},
			{English: "Do you mind if I open the window?", Korean: "창문 좀 열어도 될까?"},
			{English: "Do you mind if I ask a question?", Korean: "질문 하나 해도 될까?"},
		},
	},
	{
		ID:      "p3",
		Pattern: "It looks like...",
		Meaning: "~인 것 같아 (보여)",
		Level:   1,
		Examples: []Example{
			{English: "It looks like it's going to rain.", Korean: "비 올 것 같아."},
			{English: "It looks like you're busy.", Korean: "너 바쁜 것 같아."},
			{English: "It looks like a good idea.", Korean: "좋은 생각인 것 같아."},
		},
	},
}

// RandomPattern picks one drill pattern uniformly.
func RandomPattern() Pattern {
	return Patterns[rand.Intn(len(Patterns))]
}
