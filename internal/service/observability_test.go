package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "toggle-deload",
		Duration: 3 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"week": 2, "mesocycle": "Base"},
	})
	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "use_case=toggle-deload")
	assert.Contains(t, out, "duration_ms=3")
	assert.Regexp(t, `mesocycle=Base week=2`, out, "fields are logged in key order")

	buf.Reset()
	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name: "build-schedule",
		Err:  errors.New("mesocycle not found"),
	})
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `error="mesocycle not found"`)
}

func TestObserverFallbacks(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop([]UseCaseObserver{nil}))

	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
}
