package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/minhvng/recruitcli/internal/client/models"
)

// RESTClient implements Client on top of a Transport.
type RESTClient struct {
	transport Transport
}

func NewRESTClient(t Transport) *RESTClient {
	return &RESTClient{transport: t}
}

func (c *RESTClient) Login(ctx context.Context, username, password string) (string, error) {
	raw, err := c.transport.Request(ctx, epLogin, http.MethodPost, "", JSONBody{Value: map[string]string{
		"username": username,
		"password": password,
	}})
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	var res struct {
		Access string `json:"access"`
	}
	if raw != nil {
		if err := json.Unmarshal(raw, &res); err != nil {
			return "", fmt.Errorf("decoding login response: %w", err)
		}
	}
	return res.Access, nil
}

func (c *RESTClient) Register(ctx context.Context, username, email, password string) error {
	_, err := c.transport.Request(ctx, epRegister, http.MethodPost, "", JSONBody{Value: map[string]string{
		"username":  username,
		"email":     email,
		"password":  password,
		"password2": password,
	}})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

func (c *RESTClient) CurrentUser(ctx context.Context, token string) (*models.UserProfile, error) {
	raw, err := c.transport.Request(ctx, epUserInfo, http.MethodGet, token, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching user info: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var profile models.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("decoding user info: %w", err)
	}
	return &profile, nil
}

func (c *RESTClient) UpdateProfile(ctx context.Context, token string, patch ProfileUpdate) (*models.UserProfile, error) {

	var body any
	if patch.Avatar != nil {
		body = MultipartBody{Fields: profileFields(patch), File: patch.Avatar}
	} else {
		fields := map[string]any{}
		for k, v := range profileFields(patch) {
			fields[k] = v
		}
		body = JSONBody{Value: fields}
	}

	raw, err := c.transport.Request(ctx, epUpdateUser, http.MethodPatch, token, body)
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return decodeUser(raw)
}

func profileFields(patch ProfileUpdate) map[string]string {
	fields := map[string]string{}
	if patch.Username != nil {
		fields["username"] = *patch.Username
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.FirstName != nil {
		fields["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		fields["last_name"] = *patch.LastName
	}
	return fields
}

func (c *RESTClient) UploadAvatar(ctx context.Context, token string, avatar FormFile) (*models.UserProfile, error) {
	avatar.FieldName = "avatar"
	raw, err := c.transport.Request(ctx, epAvatarUpload, http.MethodPost, token, MultipartBody{File: &avatar})
	if err != nil {
		return nil, fmt.Errorf("uploading avatar: %w", err)
	}
	return decodeUser(raw)
}

func (c *RESTClient) ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	_, err := c.transport.Request(ctx, epChangePassword, http.MethodPost, token, JSONBody{Value: map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}})
	if err != nil {
		return fmt.Errorf("changing password: %w", err)
	}
	return nil
}

func (c *RESTClient) Roles(ctx context.Context) ([]models.Role, error) {
	raw, err := c.transport.Request(ctx, epRoles, http.MethodGet, "", nil)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}

	var entries []struct {
		RoleName models.Role `json:"role_name"`
	}
	if raw != nil {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decoding roles: %w", err)
		}
	}

	roles := make([]models.Role, 0, len(entries))
	for _, e := range entries {
		roles = append(roles, e.RoleName)
	}
	return roles, nil
}

func (c *RESTClient) SwitchRole(ctx context.Context, token string, role models.Role) (models.Role, error) {
	raw, err := c.transport.Request(ctx, epSwitchRole, http.MethodPost, token, JSONBody{Value: map[string]any{
		"role_name": role,
	}})
	if err != nil {
		return "", fmt.Errorf("switching role: %w", err)
	}

	var res struct {
		ActiveRole models.Role `json:"active_role"`
	}
	if raw != nil {
		if err := json.Unmarshal(raw, &res); err != nil {
			return "", fmt.Errorf("decoding switch-role response: %w", err)
		}
	}
	return res.ActiveRole, nil
}

func (c *RESTClient) ListResumes(ctx context.Context, token string) ([]models.Resume, error) {
	raw, err := c.transport.Request(ctx, epResumes, http.MethodGet, token, nil)
	if err != nil {
		return nil, fmt.Errorf("listing resumes: %w", err)
	}
	return decodeResumeList(raw), nil
}

func (c *RESTClient) GetResume(ctx context.Context, token, id string) (*models.Resume, error) {
	raw, err := c.transport.Request(ctx, epResumeDetail(id), http.MethodGet, token, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching resume %s: %w", id, err)
	}
	return decodeResume(raw)
}

func (c *RESTClient) CreateResume(ctx context.Context, token string, file FormFile, title string) (*models.Resume, error) {
	file.FieldName = "file_path"
	raw, err := c.transport.Request(ctx, epResumes, http.MethodPost, token, MultipartBody{
		Fields: map[string]string{"title": title},
		File:   &file,
	})
	if err != nil {
		return nil, fmt.Errorf("creating resume: %w", err)
	}
	return decodeResume(raw)
}

func (c *RESTClient) UpdateResume(ctx context.Context, token, id string, patch ResumePatch) (*models.Resume, error) {

	var body any
	if patch.File != nil {
		patch.File.FieldName = "file_path"
		body = MultipartBody{Fields: resumeFields(patch), File: patch.File}
	} else {
		fields := map[string]any{}
		if patch.Title != nil {
			fields["title"] = *patch.Title
		}
		if patch.IsActive != nil {
			fields["is_active"] = *patch.IsActive
		}
		body = JSONBody{Value: fields}
	}

	raw, err := c.transport.Request(ctx, epResumeDetail(id), http.MethodPatch, token, body)
	if err != nil {
		return nil, fmt.Errorf("updating resume %s: %w", id, err)
	}
	return decodeResume(raw)
}

func resumeFields(patch ResumePatch) map[string]string {
	fields := map[string]string{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.IsActive != nil {
		fields["is_active"] = fmt.Sprintf("%t", *patch.IsActive)
	}
	return fields
}

func (c *RESTClient) DeleteResume(ctx context.Context, token, id string) error {
	if _, err := c.transport.Request(ctx, epResumeDetail(id), http.MethodDelete, token, nil); err != nil {
		return fmt.Errorf("deleting resume %s: %w", id, err)
	}
	return nil
}

func (c *RESTClient) ActivateResume(ctx context.Context, token, id string) error {
	if _, err := c.transport.Request(ctx, epResumeActivate(id), http.MethodPost, token, nil); err != nil {
		return fmt.Errorf("activating resume %s: %w", id, err)
	}
	return nil
}

func decodeUser(raw json.RawMessage) (*models.UserProfile, error) {
	if raw == nil {
		return nil, nil
	}
	var profile models.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	return &profile, nil
}

func decodeResume(raw json.RawMessage) (*models.Resume, error) {
	if raw == nil {
		return nil, nil
	}
	var resume models.Resume
	if err := json.Unmarshal(raw, &resume); err != nil {
		return nil, fmt.Errorf("decoding resume: %w", err)
	}
	return &resume, nil
}

// decodeResumeList accepts either a bare array or a paginated
// {"results": [...]} envelope. Anything else degrades to an empty list
// rather than failing the caller.
func decodeResumeList(raw json.RawMessage) []models.Resume {
	if len(raw) == 0 {
		return []models.Resume{}
	}

	var bare []models.Resume
	if err := json.Unmarshal(raw, &bare); err == nil {
		if bare == nil {
			return []models.Resume{}
		}
		return bare
	}

	var envelope struct {
		Results []models.Resume `json:"results"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Results != nil {
		return envelope.Results
	}

	return []models.Resume{}
}
