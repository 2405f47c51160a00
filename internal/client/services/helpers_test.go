package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/minhvng/recruitcli/internal/client/api"
	"github.com/minhvng/recruitcli/internal/client/models"
	"github.com/minhvng/recruitcli/internal/client/repositories/tokens"
	"github.com/minhvng/recruitcli/internal/logging"
)

// ---- helpers ----

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS credentials (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
DELETE FROM credentials;
`)
	require.NoError(t, err)
	return db
}

func tokenRepo(t *testing.T) tokens.Repository {
	t.Helper()
	return tokens.NewSQLiteRepository(setupDB(t))
}

func persistedToken(t *testing.T, repo tokens.Repository) string {
	t.Helper()
	tok, err := repo.Get(context.Background())
	require.NoError(t, err)
	return tok
}

// staticToken is a TokenSource with a fixed value.
type staticToken string

func (s staticToken) Token() string { return string(s) }

// ---- fake client ----

// fakeClient implements api.Client for unit tests. Behavior is set through
// the Ret/Err fields; Last*/Calls fields record what was invoked.
type fakeClient struct {
	mu sync.Mutex

	LoginRet string
	LoginErr error

	CurrentUserRet *models.UserProfile
	CurrentUserErr error

	UpdateProfileRet *models.UserProfile
	UpdateProfileErr error

	UploadAvatarRet *models.UserProfile
	UploadAvatarErr error

	SwitchRoleRet models.Role
	SwitchRoleErr error

	ChangePasswordErr error

	RolesRet []models.Role
	RolesErr error

	ListRet []models.Resume
	ListErr error

	GetRet *models.Resume
	GetErr error

	CreateRet *models.Resume
	CreateErr error
	// CreateBlock, when non-nil, delays CreateResume until closed or the
	// context is cancelled.
	CreateBlock chan struct{}

	UpdateRet *models.Resume
	UpdateErr error

	DeleteErr   error
	ActivateErr error

	LoginCalls       int
	CurrentUserCalls int
	ListCalls        int
	CreateCalls      int

	LastLoginUser     string
	LastLoginPassword string
	LastToken         string
	LastResumeID      string
	LastResumePatch   api.ResumePatch
	LastProfilePatch  api.ProfileUpdate
	LastCreateTitle   string
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	f.LastLoginUser = username
	f.LastLoginPassword = password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, username, email, password string) error {
	return nil
}

func (f *fakeClient) CurrentUser(ctx context.Context, token string) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CurrentUserCalls++
	f.LastToken = token
	return f.CurrentUserRet, f.CurrentUserErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, token string, patch api.ProfileUpdate) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	f.LastProfilePatch = patch
	return f.UpdateProfileRet, f.UpdateProfileErr
}

func (f *fakeClient) UploadAvatar(ctx context.Context, token string, avatar api.FormFile) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	return f.UploadAvatarRet, f.UploadAvatarErr
}

func (f *fakeClient) ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	return f.ChangePasswordErr
}

func (f *fakeClient) Roles(ctx context.Context) ([]models.Role, error) {
	return f.RolesRet, f.RolesErr
}

func (f *fakeClient) SwitchRole(ctx context.Context, token string, role models.Role) (models.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	return f.SwitchRoleRet, f.SwitchRoleErr
}

func (f *fakeClient) ListResumes(ctx context.Context, token string) ([]models.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	f.LastToken = token
	return append([]models.Resume(nil), f.ListRet...), f.ListErr
}

func (f *fakeClient) GetResume(ctx context.Context, token, id string) (*models.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	f.LastResumeID = id
	return f.GetRet, f.GetErr
}

func (f *fakeClient) CreateResume(ctx context.Context, token string, file api.FormFile, title string) (*models.Resume, error) {
	f.mu.Lock()
	f.CreateCalls++
	f.LastToken = token
	f.LastCreateTitle = title
	block := f.CreateBlock
	ret, retErr := f.CreateRet, f.CreateErr
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return ret, retErr
}

func (f *fakeClient) UpdateResume(ctx context.Context, token, id string, patch api.ResumePatch) (*models.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	f.LastResumeID = id
	f.LastResumePatch = patch
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) DeleteResume(ctx context.Context, token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	f.LastResumeID = id
	return f.DeleteErr
}

func (f *fakeClient) ActivateResume(ctx context.Context, token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	f.LastResumeID = id
	if f.ActivateErr != nil {
		return f.ActivateErr
	}
	// mimic the backend's exclusive activation on the canned list
	for i := range f.ListRet {
		f.ListRet[i].IsActive = f.ListRet[i].ID == id
	}
	return nil
}
