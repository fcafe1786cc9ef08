package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryImages is an in-memory image host.
type MemoryImages struct {
	mu        sync.Mutex
	Objects   map[string][]byte
	UploadErr error
	DeleteErr error
	seq       int
}

func NewMemoryImages() *MemoryImages {
	return &MemoryImages{Objects: map[string][]byte{}}
}

func (m *MemoryImages) Upload(_ context.Context, filename, _ string, body io.Reader, _ int64) (string, string, error) {
	if m.UploadErr != nil {
		return "", "", m.UploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	key := fmt.Sprintf("snakes/%d-%s", m.seq, filename)
	m.Objects[key] = data
	return key, "http://images.test/" + key, nil
}

func (m *MemoryImages) Delete(_ context.Context, key string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	return nil
}

func (m *MemoryImages) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}

type Event struct {
	Topic string
	Key   string
	Type  any
}

// RecordingPublisher keeps every published event.
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []Event
}

func (p *RecordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	var typ any
	if m, ok := event.(map[string]any); ok {
		typ = m["type"]
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, Event{Topic: topic, Key: key, Type: typ})
	return nil
}

func (p *RecordingPublisher) Close() error { return nil }

func (p *RecordingPublisher) Types() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]any, 0, len(p.Events))
	for _, e := range p.Events {
		out = append(out, e.Type)
	}
	return out
}
