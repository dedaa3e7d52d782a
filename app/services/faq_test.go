package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/storebot/app/storage"
)

type fakeFAQStore struct {
	answers map[string]string
}

func newFakeFAQStore() *fakeFAQStore {
	return &fakeFAQStore{answers: make(map[string]string)}
}

func (f *fakeFAQStore) FAQEntries(_ context.Context) ([]storage.FAQEntry, error) {
	var out []storage.FAQEntry
	var id int64
	for q, a := range f.answers {
		id++
		out = append(out, storage.FAQEntry{ID: id, Question: q, Answer: a})
	}
	return out, nil
}

func (f *fakeFAQStore) FAQAnswer(_ context.Context, question string) (string, bool, error) {
	answer, ok := f.answers[question]
	return answer, ok, nil
}

func (f *fakeFAQStore) UpsertFAQ(_ context.Context, question, answer string) error {
	f.answers[question] = answer
	return nil
}

func TestFAQLookupTrimsInput(t *testing.T) {
	store := newFakeFAQStore()
	store.answers["How to pay?"] = "With a card."
	faq := NewFAQ(store)

	answer, found, err := faq.Lookup(context.Background(), "  How to pay?  ")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "With a card.", answer)
}

func TestFAQLookupMiss(t *testing.T) {
	faq := NewFAQ(newFakeFAQStore())

	_, found, err := faq.Lookup(context.Background(), "Unknown question")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFAQSaveReplacesAnswer(t *testing.T) {
	store := newFakeFAQStore()
	faq := NewFAQ(store)
	ctx := context.Background()

	require.NoError(t, faq.Save(ctx, " Delivery time? ", "3 days"))
	require.NoError(t, faq.Save(ctx, "Delivery time?", "5 days"))

	answer, found, err := faq.Lookup(ctx, "Delivery time?")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "5 days", answer)
}
