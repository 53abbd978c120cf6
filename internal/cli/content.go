package cli

import "daily-vocab-service/internal/domain"

// sampleWords provides a minimal vocabulary set; swap in the Postgres
// loader for production content.
func sampleWords() []domain.Word {
	return []domain.Word{
		{Word: "cat", Translation: "gato", Example: "The cat sleeps on the sofa."},
		{Word: "dog", Translation: "perro", Example: "The dog barks at strangers."},
		{Word: "house", Translation: "casa", Example: "Their house has a red door."},
		{Word: "water", Translation: "agua", Example: "Drink more water."},
		{Word: "book", Translation: "libro", Example: "She reads one book a week."},
	}
}

func sampleQuestions() []domain.Question {
	questions := make([]domain.Question, 0, len(sampleWords()))
	for _, w := range sampleWords() {
		questions = append(questions, domain.Question{Word: w.Word, Correct: w.Translation})
	}
	return questions
}
