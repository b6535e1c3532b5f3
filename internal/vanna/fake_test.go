package vanna

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/invoiceiq/vanna-service/internal/database"
)

// fakeEngine records calls and returns canned answers.
type fakeEngine struct {
	mu          sync.Mutex
	ddlCalls    int
	pairCalls   int
	failDDL     map[int]bool // 0-based DDL call indexes that fail
	sql         string
	generateErr error
	result      *database.Result
	runErr      error
	runCalls    atomic.Int32
	closed      bool
}

func (f *fakeEngine) TrainDDL(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.ddlCalls
	f.ddlCalls++
	if f.failDDL[idx] {
		return errors.New("embedding service unavailable")
	}
	return nil
}

func (f *fakeEngine) TrainQuestionSQL(_ context.Context, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pairCalls++
	return nil
}

func (f *fakeEngine) GenerateSQL(_ context.Context, _ string) (string, error) {
	return f.sql, f.generateErr
}

func (f *fakeEngine) RunSQL(_ context.Context, _ string) (*database.Result, error) {
	f.runCalls.Add(1)
	return f.result, f.runErr
}

func (f *fakeEngine) Close() error {
	f.closed = true
	return nil
}

func (f *fakeEngine) registrations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ddlCalls + f.pairCalls
}

// fakeCompleter replies with a fixed string and remembers the last prompt.
type fakeCompleter struct {
	reply  string
	err    error
	system string
	user   string
}

func (c *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	c.system, c.user = system, user
	return c.reply, c.err
}

func (c *fakeCompleter) Model() string { return "fake" }

// fakeQuerier serves a fixed result.
type fakeQuerier struct {
	result *database.Result
	err    error
	closed bool
}

func (q *fakeQuerier) Query(_ context.Context, _ string) (*database.Result, error) {
	return q.result, q.err
}

func (q *fakeQuerier) Close() error {
	q.closed = true
	return nil
}
