package domain

// Phase is one of the three mutually exclusive daily operating windows.
type Phase string

const (
	PhaseLearning Phase = "learning"
	PhaseQuiz     Phase = "quiz"
	PhaseRanking  Phase = "ranking"
)

// UserRecord accumulates a user's quiz results across all attempts.
// Elapsed is kept in the textual HH:MM:SS form the store uses; rank 0
// means unranked and is only recomputed during the ranking window.
type UserRecord struct {
	Email        string `json:"email"`
	CorrectCount int    `json:"correctCount"`
	Elapsed      string `json:"elapsedTime"`
	Rank         int    `json:"rank"`
}

// Word is a vocabulary entry shown during the learning window.
type Word struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Example     string `json:"example,omitempty"`
}

// Question links a word to its accepted answer.
type Question struct {
	Word    string `json:"word"`
	Correct string `json:"correct"`
}

// Submission is one quiz attempt: answers and per-item elapsed
// milliseconds, both keyed by word. Time values may be fractional.
type Submission struct {
	Email   string             `json:"email" validate:"required"`
	Answers map[string]string  `json:"answers" validate:"required,min=1"`
	Time    map[string]float64 `json:"time" validate:"required,min=1"`
}
