package mocks

import (
	"context"

	"github.com/content-engagement-api/internal/notify"
	"github.com/content-engagement-api/internal/search"
)

// MockNotifier records every comment event it receives
type MockNotifier struct {
	Events []notify.Event
	Err    error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) CommentCreated(ctx context.Context, event notify.Event) error {
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, event)
	return nil
}

// MockIndexer records every document submitted for indexing
type MockIndexer struct {
	Documents []search.Document
	Err       error
}

func NewMockIndexer() *MockIndexer {
	return &MockIndexer{}
}

func (m *MockIndexer) Index(ctx context.Context, doc search.Document) error {
	if m.Err != nil {
		return m.Err
	}
	m.Documents = append(m.Documents, doc)
	return nil
}
