package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minhvng/recruitcli/internal/client/api"
	"github.com/minhvng/recruitcli/internal/client/models"
	"github.com/minhvng/recruitcli/internal/client/services"
)

func stubInputs(t *testing.T, answers []string, password string) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", errors.New("no more stubbed answers")
		}
		a := answers[i]
		i++
		return a, nil
	}
	getPassword = func(_ io.Writer, _ string) (string, error) { return password, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

func stubConfirmation(t *testing.T, answer bool) func() {
	t.Helper()
	orig := getConfirmation
	getConfirmation = func(_ *bufio.Reader, _ string, _ io.Writer) (bool, error) { return answer, nil }
	return func() { getConfirmation = orig }
}

// fakeSession implements services.SessionService for command tests.
type fakeSession struct {
	snap services.Snapshot

	signInUser string
	signInPass string
	signInRet  *models.UserProfile
	signInErr  error

	signOutCalled bool
	signOutErr    error

	updateLast api.ProfileUpdate
	updateRet  *models.UserProfile
	updateErr  error

	avatarLast api.FormFile
	avatarRet  *models.UserProfile
	avatarErr  error

	switchLast models.Role
	switchErr  error

	passOld string
	passNew string
	passErr error
}

func (f *fakeSession) Restore(context.Context) services.Status { return f.snap.Status }
func (f *fakeSession) SignIn(_ context.Context, username, password string) (*models.UserProfile, error) {
	f.signInUser, f.signInPass = username, password
	return f.signInRet, f.signInErr
}
func (f *fakeSession) SignOut(context.Context) error {
	f.signOutCalled = true
	return f.signOutErr
}
func (f *fakeSession) MergeProfile(models.ProfilePatch) *models.UserProfile { return f.snap.Profile }
func (f *fakeSession) Snapshot() services.Snapshot                         { return f.snap }
func (f *fakeSession) Token() string                                       { return "" }
func (f *fakeSession) Subscribe() (<-chan services.Snapshot, func())       { return nil, func() {} }
func (f *fakeSession) UpdateProfile(_ context.Context, patch api.ProfileUpdate) (*models.UserProfile, error) {
	f.updateLast = patch
	return f.updateRet, f.updateErr
}
func (f *fakeSession) UploadAvatar(_ context.Context, avatar api.FormFile) (*models.UserProfile, error) {
	f.avatarLast = avatar
	return f.avatarRet, f.avatarErr
}
func (f *fakeSession) SwitchRole(_ context.Context, role models.Role) error {
	f.switchLast = role
	return f.switchErr
}
func (f *fakeSession) ChangePassword(_ context.Context, oldPassword, newPassword string) error {
	f.passOld, f.passNew = oldPassword, newPassword
	return f.passErr
}

// fakeResumes implements services.ResumeService for command tests.
type fakeResumes struct {
	listRet []models.Resume
	listErr error

	getLast string
	getRet  *models.Resume
	getErr  error

	uploadErr error

	removeLast string
	removeErr  error

	updateLastID    string
	updateLastPatch services.ResumePatch
	updateRet       *models.Resume
	updateErr       error

	activateLast string
	activateRet  []models.Resume
	activateErr  error

	deactivateLast string
	deactivateRet  *models.Resume
	deactivateErr  error
}

func (f *fakeResumes) List(context.Context) ([]models.Resume, error) { return f.listRet, f.listErr }
func (f *fakeResumes) Get(_ context.Context, id string) (*models.Resume, error) {
	f.getLast = id
	return f.getRet, f.getErr
}
func (f *fakeResumes) Upload(context.Context, api.FormFile, string) (*services.UploadTask, error) {
	return nil, f.uploadErr
}
func (f *fakeResumes) Remove(_ context.Context, id string) error {
	f.removeLast = id
	return f.removeErr
}
func (f *fakeResumes) Update(_ context.Context, id string, patch services.ResumePatch) (*models.Resume, error) {
	f.updateLastID, f.updateLastPatch = id, patch
	return f.updateRet, f.updateErr
}
func (f *fakeResumes) Activate(_ context.Context, id string) ([]models.Resume, error) {
	f.activateLast = id
	return f.activateRet, f.activateErr
}
func (f *fakeResumes) Deactivate(_ context.Context, id string) (*models.Resume, error) {
	f.deactivateLast = id
	return f.deactivateRet, f.deactivateErr
}
func (f *fakeResumes) SetActivationObserver(func(services.ActivationPhase)) {}

// fakeAPI implements api.Client; only Register and Roles matter here.
type fakeAPI struct {
	regUser  string
	regEmail string
	regPass  string
	regErr   error

	rolesRet []models.Role
	rolesErr error
}

func (f *fakeAPI) Login(context.Context, string, string) (string, error) { return "", nil }
func (f *fakeAPI) Register(_ context.Context, username, email, password string) error {
	f.regUser, f.regEmail, f.regPass = username, email, password
	return f.regErr
}
func (f *fakeAPI) CurrentUser(context.Context, string) (*models.UserProfile, error) {
	return nil, nil
}
func (f *fakeAPI) UpdateProfile(context.Context, string, api.ProfileUpdate) (*models.UserProfile, error) {
	return nil, nil
}
func (f *fakeAPI) UploadAvatar(context.Context, string, api.FormFile) (*models.UserProfile, error) {
	return nil, nil
}
func (f *fakeAPI) ChangePassword(context.Context, string, string, string) error { return nil }
func (f *fakeAPI) Roles(context.Context) ([]models.Role, error)                 { return f.rolesRet, f.rolesErr }
func (f *fakeAPI) SwitchRole(context.Context, string, models.Role) (models.Role, error) {
	return "", nil
}
func (f *fakeAPI) ListResumes(context.Context, string) ([]models.Resume, error) { return nil, nil }
func (f *fakeAPI) GetResume(context.Context, string, string) (*models.Resume, error) {
	return nil, nil
}
func (f *fakeAPI) CreateResume(context.Context, string, api.FormFile, string) (*models.Resume, error) {
	return nil, nil
}
func (f *fakeAPI) UpdateResume(context.Context, string, string, api.ResumePatch) (*models.Resume, error) {
	return nil, nil
}
func (f *fakeAPI) DeleteResume(context.Context, string, string) error   { return nil }
func (f *fakeAPI) ActivateResume(context.Context, string, string) error { return nil }
