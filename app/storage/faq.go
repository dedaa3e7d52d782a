package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// FAQEntries returns all stored question/answer pairs.
func (g *Gateway) FAQEntries(ctx context.Context) ([]FAQEntry, error) {
	var out []FAQEntry
	if err := g.db.SelectContext(ctx, &out, `SELECT id, question, answer FROM faq ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select faq entries: %w", err)
	}
	return out, nil
}

// FAQAnswer looks up an answer by exact question text. An unknown question is
// reported via the boolean, not as an error.
func (g *Gateway) FAQAnswer(ctx context.Context, question string) (string, bool, error) {
	var answer string
	err := g.db.GetContext(ctx, &answer, `SELECT answer FROM faq WHERE question = $1`, question)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select faq answer: %w", err)
	}
	return answer, true, nil
}

// UpsertFAQ stores a question/answer pair; an existing question gets its
// answer replaced.
func (g *Gateway) UpsertFAQ(ctx context.Context, question, answer string) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO faq (question, answer)
		VALUES ($1, $2)
		ON CONFLICT (question) DO UPDATE SET answer = EXCLUDED.answer`,
		question, answer,
	)
	if err != nil {
		return fmt.Errorf("upsert faq entry: %w", err)
	}
	return nil
}
