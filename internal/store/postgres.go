package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/quanda-ai/quanda/internal/knowledge"
)

// PostgresStore persists QA records in a qa_records table, one row per
// question/answer pair. Fetch order follows insertion order (seq).
type PostgresStore struct {
	DB *sql.DB
}

// NewPostgres opens and pings a postgres connection for the given DSN.
func NewPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &PostgresStore{DB: db}, nil
}

func (s *PostgresStore) Fetch(ctx context.Context, tenant string, limit int) ([]knowledge.Record, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT file_id, question, answer, page_numbers FROM qa_records WHERE tenant = $1 ORDER BY seq LIMIT $2`,
		tenant, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch qa records: %w", err)
	}
	defer rows.Close()

	var records []knowledge.Record
	for rows.Next() {
		var rec knowledge.Record
		if err := rows.Scan(&rec.FileID, &rec.Question, &rec.Answer, pq.Array(&rec.PageNumbers)); err != nil {
			return nil, fmt.Errorf("scan qa record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *PostgresStore) Seed(ctx context.Context, tenant string, records []knowledge.Record) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, rec := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO qa_records (tenant, file_id, question, answer, page_numbers) VALUES ($1, $2, $3, $4, $5)`,
			tenant, rec.FileID, rec.Question, rec.Answer, pq.Array(rec.PageNumbers)); err != nil {
			return fmt.Errorf("insert qa record: %w", err)
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) Truncate(ctx context.Context, tenant string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM qa_records WHERE tenant = $1`, tenant)
	return err
}

func (s *PostgresStore) Close() error { return s.DB.Close() }
