package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/minhvng/recruitcli/internal/client/api"
	"github.com/minhvng/recruitcli/internal/client/models"
	"github.com/minhvng/recruitcli/internal/logging"
)

// TokenSource supplies the session's current access token. An empty token
// means no session is established.
type TokenSource interface {
	Token() string
}

// ActivationPhase is published while Activate runs so a UI can show the
// two-phase nature of exclusive activation instead of flickering stale data.
type ActivationPhase string

const (
	PhaseActivating  ActivationPhase = "activating"
	PhaseReconciling ActivationPhase = "reconciling"
	PhaseDone        ActivationPhase = "done"
)

// Progress ramp used while the transport gives no byte-level feedback:
// +10 every 200ms, held at 90 until the server answers.
const (
	uploadRampInterval = 200 * time.Millisecond
	uploadRampStep     = 10
	uploadRampCeiling  = 90
)

// ResumePatch is a partial resume edit applied by Update.
type ResumePatch struct {
	Title    *string
	IsActive *bool
	File     *api.FormFile
}

// ResumeService manages the user's resume set. All operations require an
// established session; activation is server-authoritative and always
// reconciled by a follow-up fetch, never assumed locally.
type ResumeService interface {
	List(ctx context.Context) ([]models.Resume, error)
	Get(ctx context.Context, id string) (*models.Resume, error)
	Upload(ctx context.Context, file api.FormFile, title string) (*UploadTask, error)
	Remove(ctx context.Context, id string) error
	Update(ctx context.Context, id string, patch ResumePatch) (*models.Resume, error)
	Activate(ctx context.Context, id string) ([]models.Resume, error)
	Deactivate(ctx context.Context, id string) (*models.Resume, error)

	// SetActivationObserver installs a callback invoked on each activation
	// phase. Intended for UI feedback; pass nil to remove.
	SetActivationObserver(fn func(ActivationPhase))
}

type resumeService struct {
	client  api.Client
	session TokenSource
	log     logging.Logger

	// onPhase, when set, observes activation phases.
	onPhase func(ActivationPhase)

	uploadMu sync.Mutex
	current  *UploadTask
}

// NewResumeService binds the lifecycle manager to an API client and the
// session's token source.
func NewResumeService(client api.Client, session TokenSource, log logging.Logger) ResumeService {
	return &resumeService{client: client, session: session, log: log}
}

func (s *resumeService) SetActivationObserver(fn func(ActivationPhase)) {
	s.onPhase = fn
}

func (s *resumeService) token() (string, error) {
	t := s.session.Token()
	if t == "" {
		return "", ErrNotAuthenticated
	}
	return t, nil
}

func (s *resumeService) List(ctx context.Context) ([]models.Resume, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.client.ListResumes(ctx, token)
}

func (s *resumeService) Get(ctx context.Context, id string) (*models.Resume, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.client.GetResume(ctx, token, id)
}

// Upload starts an asynchronous upload and returns its task handle. Only one
// upload runs at a time. An empty title falls back to the file name; a title
// that is empty even then is a validation error.
func (s *resumeService) Upload(ctx context.Context, file api.FormFile, title string) (*UploadTask, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSpace(file.FileName)
	}
	if title == "" {
		return nil, fmt.Errorf("title: %w", ErrEmptyRequiredField)
	}

	s.uploadMu.Lock()
	defer s.uploadMu.Unlock()
	if s.current != nil && !isTerminal(s.current.State()) {
		return nil, ErrUploadInProgress
	}

	uctx, cancel := context.WithCancel(ctx)
	task := newUploadTask(title, file.FileName, cancel)
	s.current = task

	task.start()
	go s.ramp(uctx, task)
	go s.send(uctx, task, token, file, title)

	return task, nil
}

// ramp drives the synthetic progress indicator while the request is in
// flight. It stops at the ceiling; the terminal state sets the final value.
func (s *resumeService) ramp(ctx context.Context, task *UploadTask) {
	ticker := time.NewTicker(uploadRampInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			task.advance(uploadRampStep, uploadRampCeiling)
		case <-ctx.Done():
			return
		case <-task.Done():
			return
		}
	}
}

func (s *resumeService) send(ctx context.Context, task *UploadTask, token string, file api.FormFile, title string) {
	resume, err := s.client.CreateResume(ctx, token, file, title)
	if err == nil && ctx.Err() != nil {
		// the task was abandoned while the response was in flight
		err = ctx.Err()
	}
	if err != nil {
		s.log.Warn(ctx, "resume upload failed", "task", task.ID, "error", err)
		task.fail(fmt.Errorf("upload: %w", err))
		return
	}
	s.log.Info(ctx, "resume uploaded", "task", task.ID, "resume", resume.ID)
	task.succeed(resume)
}

// Remove deletes a resume. Deletion is destructive: failures are reported,
// never retried, and the resource stays listed.
func (s *resumeService) Remove(ctx context.Context, id string) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	return s.client.DeleteResume(ctx, token, id)
}

func (s *resumeService) Update(ctx context.Context, id string, patch ResumePatch) (*models.Resume, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, fmt.Errorf("title: %w", ErrEmptyRequiredField)
		}
		patch.Title = &trimmed
	}

	return s.client.UpdateResume(ctx, token, id, api.ResumePatch{
		Title:    patch.Title,
		IsActive: patch.IsActive,
		File:     patch.File,
	})
}

// Activate asks the backend to make the resume the single active one, then
// re-fetches the list to reconcile local flags with the server's view. The
// sibling flags are never flipped locally.
func (s *resumeService) Activate(ctx context.Context, id string) ([]models.Resume, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}

	s.notify(PhaseActivating)
	if err := s.client.ActivateResume(ctx, token, id); err != nil {
		return nil, err
	}

	s.notify(PhaseReconciling)
	list, err := s.client.ListResumes(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("activation succeeded but reconciliation failed: %w", err)
	}

	s.notify(PhaseDone)
	return list, nil
}

// Deactivate clears the active flag through a plain field update. Unlike
// Activate this has no exclusivity side effects, so no reconciliation fetch.
func (s *resumeService) Deactivate(ctx context.Context, id string) (*models.Resume, error) {
	inactive := false
	return s.Update(ctx, id, ResumePatch{IsActive: &inactive})
}

func (s *resumeService) notify(phase ActivationPhase) {
	if s.onPhase != nil {
		s.onPhase(phase)
	}
}

func isTerminal(st UploadState) bool {
	return st == UploadStateSucceeded || st == UploadStateFailed
}
