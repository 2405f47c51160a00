package api

import (
	"context"

	"github.com/minhvng/recruitcli/internal/client/models"
)

// ProfileUpdate is a partial profile edit. Nil fields are omitted from the
// request. When Avatar is set the request goes out as multipart, otherwise
// as JSON.
type ProfileUpdate struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Avatar    *FormFile
}

// ResumePatch is a partial resume edit. When File is set the request goes
// out as multipart, otherwise as JSON.
type ResumePatch struct {
	Title    *string
	IsActive *bool
	File     *FormFile
}

// Client is the typed surface of the recruitment backend consumed by the
// session and resume services.
type Client interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, email, password string) error
	CurrentUser(ctx context.Context, token string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, token string, patch ProfileUpdate) (*models.UserProfile, error)
	UploadAvatar(ctx context.Context, token string, avatar FormFile) (*models.UserProfile, error)
	ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error
	Roles(ctx context.Context) ([]models.Role, error)
	SwitchRole(ctx context.Context, token string, role models.Role) (models.Role, error)

	ListResumes(ctx context.Context, token string) ([]models.Resume, error)
	GetResume(ctx context.Context, token, id string) (*models.Resume, error)
	CreateResume(ctx context.Context, token string, file FormFile, title string) (*models.Resume, error)
	UpdateResume(ctx context.Context, token, id string, patch ResumePatch) (*models.Resume, error)
	DeleteResume(ctx context.Context, token, id string) error
	ActivateResume(ctx context.Context, token, id string) error
}
