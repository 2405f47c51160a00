package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/minhvng/recruitcli/internal/client/models"
)

// UploadState tracks an UploadTask through its lifecycle.
type UploadState string

const (
	UploadStateIdle      UploadState = "idle"
	UploadStatePicking   UploadState = "picking"
	UploadStateUploading UploadState = "uploading"
	UploadStateSucceeded UploadState = "succeeded"
	UploadStateFailed    UploadState = "failed"
)

// UploadTask is the ephemeral handle of one in-flight resume upload. It is
// created when a file is picked and discarded once the result is consumed.
//
// Progress is advisory and strictly monotonic: the synthetic ramp never
// reaches 100 before the server answers, and the true terminal state always
// overrides it. Cancel aborts the in-flight request; a late response after
// cancellation is disregarded.
type UploadTask struct {
	ID       string
	Title    string
	FileName string

	mu       sync.Mutex
	progress int
	state    UploadState
	resume   *models.Resume
	err      error

	cancel context.CancelFunc
	done   chan struct{}
}

func newUploadTask(title, fileName string, cancel context.CancelFunc) *UploadTask {
	return &UploadTask{
		ID:       uuid.NewString(),
		Title:    title,
		FileName: fileName,
		state:    UploadStatePicking,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Progress returns the current indicator in 0–100.
func (t *UploadTask) Progress() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

func (t *UploadTask) State() UploadState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Done is closed once the task reaches a terminal state.
func (t *UploadTask) Done() <-chan struct{} {
	return t.done
}

// Result returns the created resume or the failure. Valid after Done is
// closed; before that it reports a nil resume and nil error.
func (t *UploadTask) Result() (*models.Resume, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resume, t.err
}

// Cancel aborts the upload. Safe to call at any point, including after
// completion, where it is a no-op.
func (t *UploadTask) Cancel() {
	t.cancel()
}

func (t *UploadTask) start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == UploadStatePicking {
		t.state = UploadStateUploading
	}
}

// advance bumps the progress indicator, never backwards, never past limit.
func (t *UploadTask) advance(delta, limit int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != UploadStateUploading {
		return
	}
	p := t.progress + delta
	if p > limit {
		p = limit
	}
	if p > t.progress {
		t.progress = p
	}
}

func (t *UploadTask) succeed(resume *models.Resume) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.terminalLocked() {
		return
	}
	t.state = UploadStateSucceeded
	t.progress = 100
	t.resume = resume
	close(t.done)
}

func (t *UploadTask) fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.terminalLocked() {
		return
	}
	t.state = UploadStateFailed
	t.err = err
	close(t.done)
}

func (t *UploadTask) terminalLocked() bool {
	return t.state == UploadStateSucceeded || t.state == UploadStateFailed
}
