package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"daily-vocab-service/internal/domain"
)

type userRecordRow struct {
	bun.BaseModel `bun:"table:user_records,alias:ur"`

	Email        string `bun:"email,pk"`
	CorrectCount int    `bun:"correct_count"`
	Elapsed      string `bun:"elapsed"`
	Rank         int    `bun:"rank"`
}

// RecordStore persists user records in Postgres via bun.
type RecordStore struct {
	db *bun.DB
}

func NewRecordStore(db *bun.DB) *RecordStore {
	return &RecordStore{db: db}
}

func (s *RecordStore) All(ctx context.Context) ([]domain.UserRecord, error) {
	var rows []userRecordRow
	if err := s.db.NewSelect().Model(&rows).Order("email ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select records: %w", err)
	}

	records := make([]domain.UserRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toDomain())
	}
	return records, nil
}

func (s *RecordStore) FindByEmail(ctx context.Context, email string) (domain.UserRecord, error) {
	var row userRecordRow
	err := s.db.NewSelect().Model(&row).Where("email = ?", email).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserRecord{}, domain.ErrRecordNotFound
	}
	if err != nil {
		return domain.UserRecord{}, fmt.Errorf("select record: %w", err)
	}
	return row.toDomain(), nil
}

// Save upserts the record by email, so the existence-check in the
// service never races a concurrent insert for the same address.
func (s *RecordStore) Save(ctx context.Context, record domain.UserRecord) error {
	row := fromDomain(record)
	_, err := s.db.NewInsert().
		Model(&row).
		On("CONFLICT (email) DO UPDATE").
		Set("correct_count = EXCLUDED.correct_count").
		Set("elapsed = EXCLUDED.elapsed").
		Set("rank = EXCLUDED.rank").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

// UpdateRanks rewrites every rank inside one transaction so a read
// never observes a half-applied leaderboard.
func (s *RecordStore) UpdateRanks(ctx context.Context, ranked []domain.UserRecord) error {
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, record := range ranked {
			_, err := tx.NewUpdate().
				Model((*userRecordRow)(nil)).
				Set("rank = ?", record.Rank).
				Where("email = ?", record.Email).
				Exec(ctx)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update ranks: %w", err)
	}
	return nil
}

func (s *RecordStore) ResetRanks(ctx context.Context) error {
	_, err := s.db.NewUpdate().
		Model((*userRecordRow)(nil)).
		Set("rank = ?", 0).
		Where("rank <> 0").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("reset ranks: %w", err)
	}
	return nil
}

func (r userRecordRow) toDomain() domain.UserRecord {
	return domain.UserRecord{
		Email:        r.Email,
		CorrectCount: r.CorrectCount,
		Elapsed:      r.Elapsed,
		Rank:         r.Rank,
	}
}

func fromDomain(record domain.UserRecord) userRecordRow {
	return userRecordRow{
		Email:        record.Email,
		CorrectCount: record.CorrectCount,
		Elapsed:      record.Elapsed,
		Rank:         record.Rank,
	}
}
