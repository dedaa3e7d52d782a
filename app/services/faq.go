package services

import (
	"context"
	"strings"

	"github.com/m3rciful/storebot/app/storage"
	"github.com/m3rciful/storebot/core/logger"
	"log/slog"
)

// FAQGateway is the storage surface the FAQ responder depends on.
type FAQGateway interface {
	FAQEntries(ctx context.Context) ([]storage.FAQEntry, error)
	FAQAnswer(ctx context.Context, question string) (string, bool, error)
	UpsertFAQ(ctx context.Context, question, answer string) error
}

// FAQ answers exact-match questions and captures answers for unknown ones.
type FAQ struct {
	store FAQGateway
}

// NewFAQ constructs the responder over a storage gateway.
func NewFAQ(store FAQGateway) *FAQ {
	return &FAQ{store: store}
}

// Entries lists all stored question/answer pairs.
func (f *FAQ) Entries(ctx context.Context) ([]storage.FAQEntry, error) {
	return f.store.FAQEntries(ctx)
}

// Lookup resolves a question by exact text match. A miss is a normal outcome.
func (f *FAQ) Lookup(ctx context.Context, question string) (string, bool, error) {
	return f.store.FAQAnswer(ctx, strings.TrimSpace(question))
}

// Save stores an answer for a question, replacing any previous answer.
func (f *FAQ) Save(ctx context.Context, question, answer string) error {
	question = strings.TrimSpace(question)
	if err := f.store.UpsertFAQ(ctx, question, answer); err != nil {
		return err
	}
	logger.SVCFaq.LogAttrs(ctx, slog.LevelInfo, "faq.saved",
		slog.String("payload", logger.SanitizeLimit(question, 128)),
	)
	return nil
}
