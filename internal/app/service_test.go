package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"daily-vocab-service/internal/app"
	"daily-vocab-service/internal/domain"
	"daily-vocab-service/internal/infra/memory"
)

var (
	learningTime = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	quizTime     = time.Date(2025, 6, 1, 20, 15, 0, 0, time.UTC)
	rankingTime  = time.Date(2025, 6, 1, 21, 0, 0, 0, time.UTC)
)

func newTestService() (*app.Service, *memory.RecordStore) {
	store := memory.NewRecordStore()
	content := memory.NewStaticContent(
		[]domain.Word{
			{Word: "cat", Translation: "gato"},
			{Word: "dog", Translation: "perro"},
		},
		[]domain.Question{
			{Word: "cat", Correct: "gato"},
			{Word: "dog", Correct: "gato"}, // deliberately mismatched answer key
		},
	)
	return app.NewService(store, content), store
}

func TestSubmitFirstAttemptCreatesRecord(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService()

	result, err := service.Submit(ctx, domain.Submission{
		Email:   "alice@example.com",
		Answers: map[string]string{"cat": "gato"},
		Time:    map[string]float64{"cat": 5000},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.CorrectAnswers != 1 || result.TotalQuestions != 1 {
		t.Fatalf("expected 1/1 correct, got %d/%d", result.CorrectAnswers, result.TotalQuestions)
	}
	if result.TimeTaken != "00:00:05" {
		t.Fatalf("expected 00:00:05, got %s", result.TimeTaken)
	}

	record, err := store.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if record.CorrectCount != 1 || record.Rank != 0 || record.Elapsed != "00:00:05" {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestSubmitMergesWithExistingRecord(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService()

	if _, err := service.Submit(ctx, domain.Submission{
		Email:   "alice@example.com",
		Answers: map[string]string{"cat": "gato"},
		Time:    map[string]float64{"cat": 5000},
	}); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	result, err := service.Submit(ctx, domain.Submission{
		Email:   "alice@example.com",
		Answers: map[string]string{"dog": "perro"},
		Time:    map[string]float64{"dog": 3000},
	})
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if result.CorrectAnswers != 0 {
		t.Fatalf("perro is not the accepted answer, got %d correct", result.CorrectAnswers)
	}
	if result.TimeTaken != "00:00:03" {
		t.Fatalf("attempt interval should cover this attempt only, got %s", result.TimeTaken)
	}

	record, err := store.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("find record: %v", err)
	}
	if record.CorrectCount != 1 {
		t.Fatalf("correct count should stay at 1, got %d", record.CorrectCount)
	}
	if record.Elapsed != "00:00:08" {
		t.Fatalf("expected cumulative 00:00:08, got %s", record.Elapsed)
	}
}

func TestSubmitIgnoresUnknownWordsAndMissingTimes(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService()

	result, err := service.Submit(ctx, domain.Submission{
		Email: "bob@example.com",
		Answers: map[string]string{
			"cat":       "gato",
			"unicorn":   "unicornio", // no such question
			"dog":       "gato",
			"elephant?": "elefante",
		},
		Time: map[string]float64{
			"cat":     2000,
			"dog":     1000,
			"unicorn": 60000, // counted: summation keys off answers
			"stray":   99999, // dropped: no matching answer entry
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.CorrectAnswers != 2 {
		t.Fatalf("expected 2 correct (cat, dog), got %d", result.CorrectAnswers)
	}
	if result.TimeTaken != "00:01:03" {
		t.Fatalf("expected 00:01:03, got %s", result.TimeTaken)
	}

	record, _ := store.FindByEmail(ctx, "bob@example.com")
	if record.Elapsed != "00:01:03" {
		t.Fatalf("expected persisted 00:01:03, got %s", record.Elapsed)
	}
}

func TestSubmitValidatesRequest(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService()

	_, err := service.Submit(ctx, domain.Submission{
		Email:   "alice@example.com",
		Answers: map[string]string{"cat": "gato"},
		// Time missing entirely
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// Nothing may be persisted on a rejected request.
	if _, err := store.FindByEmail(ctx, "alice@example.com"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected no record, got %v", err)
	}

	for _, sub := range []domain.Submission{
		{Answers: map[string]string{"cat": "gato"}, Time: map[string]float64{"cat": 1}},
		{Email: "a@example.com", Time: map[string]float64{"cat": 1}},
		{Email: "a@example.com", Answers: map[string]string{}, Time: map[string]float64{"cat": 1}},
	} {
		if _, err := service.Submit(ctx, sub); !domain.IsValidation(err) {
			t.Fatalf("expected validation error for %+v, got %v", sub, err)
		}
	}
}

func TestContentDuringLearningResetsRanks(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService()

	_ = store.Save(ctx, domain.UserRecord{Email: "alice@example.com", CorrectCount: 2, Elapsed: "00:00:10", Rank: 1})
	_ = store.Save(ctx, domain.UserRecord{Email: "bob@example.com", CorrectCount: 1, Elapsed: "00:00:10", Rank: 2})

	result, err := service.Content(ctx, "alice@example.com", learningTime)
	if err != nil {
		t.Fatalf("content failed: %v", err)
	}
	if result.Phase != domain.PhaseLearning || len(result.Words) != 2 {
		t.Fatalf("expected learning words, got %+v", result)
	}

	records, _ := store.All(ctx)
	for _, record := range records {
		if record.Rank != 0 {
			t.Fatalf("expected ranks cleared, got %+v", record)
		}
	}
}

func TestContentDuringQuizReturnsQuestions(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	result, err := service.Content(ctx, "alice@example.com", quizTime)
	if err != nil {
		t.Fatalf("content failed: %v", err)
	}
	if result.Phase != domain.PhaseQuiz || len(result.Questions) != 2 {
		t.Fatalf("expected quiz questions, got %+v", result)
	}
}

func TestContentDuringRankingRanksAndPersists(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService()

	_ = store.Save(ctx, domain.UserRecord{Email: "alice@example.com", CorrectCount: 2, Elapsed: "00:00:10"})
	_ = store.Save(ctx, domain.UserRecord{Email: "bob@example.com", CorrectCount: 3, Elapsed: "00:00:30"})

	result, err := service.Content(ctx, "alice@example.com", rankingTime)
	if err != nil {
		t.Fatalf("content failed: %v", err)
	}
	if result.Phase != domain.PhaseRanking || result.Rankings == nil {
		t.Fatalf("expected rankings, got %+v", result)
	}
	if result.Rankings.RequestingUser == nil || result.Rankings.RequestingUser.Rank != 2 {
		t.Fatalf("expected alice at rank 2, got %+v", result.Rankings.RequestingUser)
	}
	if result.Rankings.Leaderboard[0].Email != "bob@example.com" {
		t.Fatalf("expected bob leading, got %+v", result.Rankings.Leaderboard[0])
	}

	bob, _ := store.FindByEmail(ctx, "bob@example.com")
	if bob.Rank != 1 {
		t.Fatalf("expected persisted rank 1 for bob, got %d", bob.Rank)
	}
}

func TestContentDuringRankingForUnknownEmail(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService()

	_ = store.Save(ctx, domain.UserRecord{Email: "bob@example.com", CorrectCount: 3, Elapsed: "00:00:30"})

	result, err := service.Content(ctx, "stranger@example.com", rankingTime)
	if err != nil {
		t.Fatalf("content failed: %v", err)
	}
	if result.Rankings.RequestingUser != nil {
		t.Fatalf("expected absent requesting user, got %+v", result.Rankings.RequestingUser)
	}
	if len(result.Rankings.Leaderboard) != 1 {
		t.Fatalf("expected leaderboard with 1 entry, got %d", len(result.Rankings.Leaderboard))
	}
}

func TestSubscribeReceivesRankedLeaderboard(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService()

	_ = store.Save(ctx, domain.UserRecord{Email: "alice@example.com", CorrectCount: 2, Elapsed: "00:00:10"})

	updates, cancel := service.SubscribeLeaderboard()
	defer cancel()

	if _, err := service.Content(ctx, "alice@example.com", rankingTime); err != nil {
		t.Fatalf("content failed: %v", err)
	}

	select {
	case leaderboard := <-updates:
		if len(leaderboard) != 1 || leaderboard[0].Rank != 1 {
			t.Fatalf("unexpected leaderboard update: %+v", leaderboard)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected a leaderboard update")
	}
}
