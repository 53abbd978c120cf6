package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"daily-vocab-service/internal/domain"
)

type wordRow struct {
	bun.BaseModel `bun:"table:words"`

	Word        string `bun:"word,pk"`
	Translation string `bun:"translation"`
	Example     string `bun:"example"`
}

type questionRow struct {
	bun.BaseModel `bun:"table:questions"`

	Word    string `bun:"word,pk"`
	Correct string `bun:"correct"`
}

// SeedContent upserts the given word and question sets, keyed by word,
// so reseeding a deployment is safe.
func SeedContent(ctx context.Context, db *bun.DB, words []domain.Word, questions []domain.Question) error {
	wordRows := make([]wordRow, 0, len(words))
	for _, w := range words {
		wordRows = append(wordRows, wordRow{Word: w.Word, Translation: w.Translation, Example: w.Example})
	}
	questionRows := make([]questionRow, 0, len(questions))
	for _, q := range questions {
		questionRows = append(questionRows, questionRow{Word: q.Word, Correct: q.Correct})
	}

	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if len(wordRows) > 0 {
			_, err := tx.NewInsert().
				Model(&wordRows).
				On("CONFLICT (word) DO UPDATE").
				Set("translation = EXCLUDED.translation").
				Set("example = EXCLUDED.example").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("seed words: %w", err)
			}
		}
		if len(questionRows) > 0 {
			_, err := tx.NewInsert().
				Model(&questionRows).
				On("CONFLICT (word) DO UPDATE").
				Set("correct = EXCLUDED.correct").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("seed questions: %w", err)
			}
		}
		return nil
	})
}
