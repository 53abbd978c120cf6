package memory

import (
	"context"

	"daily-vocab-service/internal/domain"
)

// StaticContent serves a fixed word/question set (useful for tests and
// for running the server without a database).
type StaticContent struct {
	words     []domain.Word
	questions []domain.Question
}

func NewStaticContent(words []domain.Word, questions []domain.Question) *StaticContent {
	return &StaticContent{words: words, questions: questions}
}

func (c *StaticContent) Words(_ context.Context) ([]domain.Word, error) {
	return c.words, nil
}

func (c *StaticContent) Questions(_ context.Context) ([]domain.Question, error) {
	return c.questions, nil
}
