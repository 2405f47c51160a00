package api

// Endpoint paths, mirroring the backend router.
const (
	epLogin          = "/auth/login/"
	epRegister       = "/auth/register/"
	epUserInfo       = "/auth/user-info/"
	epUpdateUser     = "/auth/update-user/"
	epChangePassword = "/auth/change-password/"
	epAvatarUpload   = "/auth/avatar-upload/"
	epSwitchRole     = "/auth/switch-role/"
	epRoles          = "/roles/"
	epResumes        = "/resumes/"
)

func epResumeDetail(id string) string {
	return epResumes + id + "/"
}

func epResumeActivate(id string) string {
	return epResumeDetail(id) + "activate/"
}
