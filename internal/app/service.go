package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	"daily-vocab-service/internal/domain"
)

// RecordStore abstracts how user records are persisted (Postgres, in-memory).
type RecordStore interface {
	All(ctx context.Context) ([]domain.UserRecord, error)
	FindByEmail(ctx context.Context, email string) (domain.UserRecord, error)
	Save(ctx context.Context, record domain.UserRecord) error
	UpdateRanks(ctx context.Context, ranked []domain.UserRecord) error
	ResetRanks(ctx context.Context) error
}

// ContentRepository serves the read-only word and question sets
// (from cache/backing store).
type ContentRepository interface {
	Words(ctx context.Context) ([]domain.Word, error)
	Questions(ctx context.Context) ([]domain.Question, error)
}

// ContentResult is what a read request gets back; exactly one of Words,
// Questions, and Rankings is populated depending on the phase.
type ContentResult struct {
	Phase     domain.Phase
	Words     []domain.Word
	Questions []domain.Question
	Rankings  *RankingView
	Message   string
}

// RankingView pairs the requesting user's record (nil when they never
// submitted) with the full ranked leaderboard.
type RankingView struct {
	RequestingUser *domain.UserRecord  `json:"requestingUser"`
	Leaderboard    []domain.UserRecord `json:"leaderboard"`
}

// SubmitResult summarizes one graded attempt.
type SubmitResult struct {
	CorrectAnswers int
	TotalQuestions int
	TimeTaken      string
}

// Service is the phase-gated gateway over content and user records.
type Service struct {
	records  RecordStore
	content  ContentRepository
	validate *validator.Validate
	hub      *leaderboardHub
}

func NewService(records RecordStore, content ContentRepository) *Service {
	return &Service{
		records:  records,
		content:  content,
		validate: validator.New(),
		hub:      newLeaderboardHub(),
	}
}

// Content resolves the phase for the given instant and returns the view
// it gates: words while learning, questions during the quiz, the ranked
// leaderboard afterwards. The caller passes the clock in so the decision
// is deterministic under test.
func (s *Service) Content(ctx context.Context, email string, now time.Time) (ContentResult, error) {
	phase, window := PhaseAt(now)

	switch phase {
	case domain.PhaseLearning:
		// Ranks only mean anything during the ranking window; clear
		// yesterday's leftovers before serving today's words.
		if err := s.records.ResetRanks(ctx); err != nil {
			return ContentResult{}, fmt.Errorf("reset ranks: %w", err)
		}
		words, err := s.content.Words(ctx)
		if err != nil {
			return ContentResult{}, fmt.Errorf("load words: %w", err)
		}
		return ContentResult{
			Phase:   phase,
			Words:   words,
			Message: "Learning window is open (" + window + "). The quiz starts at 20:00 UTC.",
		}, nil

	case domain.PhaseQuiz:
		questions, err := s.content.Questions(ctx)
		if err != nil {
			return ContentResult{}, fmt.Errorf("load questions: %w", err)
		}
		return ContentResult{
			Phase:     phase,
			Questions: questions,
			Message:   "Quiz window is open (" + window + "). Submit your answers before 20:30 UTC.",
		}, nil

	default:
		view, err := s.rankAll(ctx, email)
		if err != nil {
			return ContentResult{}, err
		}
		return ContentResult{
			Phase:    phase,
			Rankings: view,
			Message:  "Rankings for today (" + window + "). Learning reopens at 00:00 UTC.",
		}, nil
	}
}

// rankAll recomputes and persists ranks over every record, then carves
// out the requesting user's row. Rank writes are not transactional on
// every store; an error here means ranks may be partially updated and
// the caller should retry.
func (s *Service) rankAll(ctx context.Context, email string) (*RankingView, error) {
	records, err := s.records.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	ranked := ComputeRanks(records)
	if err := s.records.UpdateRanks(ctx, ranked); err != nil {
		return nil, fmt.Errorf("persist ranks: %w", err)
	}
	s.hub.broadcast(ranked)

	view := &RankingView{Leaderboard: ranked}
	for i := range ranked {
		if ranked[i].Email == email {
			view.RequestingUser = &ranked[i]
			break
		}
	}
	return view, nil
}

// Submit grades one attempt, merges it into the user's cumulative record
// and persists the result. Retried submissions double-count; nothing
// deduplicates attempts.
func (s *Service) Submit(ctx context.Context, sub domain.Submission) (SubmitResult, error) {
	if err := s.validate.Struct(sub); err != nil {
		return SubmitResult{}, &domain.ValidationError{
			Msg: "email, answers and time are all required",
		}
	}

	var existing *domain.UserRecord
	record, err := s.records.FindByEmail(ctx, sub.Email)
	switch {
	case err == nil:
		existing = &record
	case errors.Is(err, domain.ErrRecordNotFound):
		// first attempt for this email
	default:
		return SubmitResult{}, fmt.Errorf("load record: %w", err)
	}

	questions, err := s.content.Questions(ctx)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("load questions: %w", err)
	}

	merged, correct, attemptInterval := applyAttempt(existing, sub, questions)
	if err := s.records.Save(ctx, merged); err != nil {
		return SubmitResult{}, fmt.Errorf("save record: %w", err)
	}

	log.Printf("graded attempt for %s: %d/%d correct in %s", sub.Email, correct, len(sub.Answers), attemptInterval)
	return SubmitResult{
		CorrectAnswers: correct,
		TotalQuestions: len(sub.Answers),
		TimeTaken:      attemptInterval,
	}, nil
}

// SubscribeLeaderboard returns a channel fed with every freshly ranked
// leaderboard. The caller must invoke the returned cancel function to
// avoid leaks.
func (s *Service) SubscribeLeaderboard() (<-chan []domain.UserRecord, func()) {
	return s.hub.subscribe()
}
