package services

import "github.com/minhvng/recruitcli/internal/client/models"

// Mode is the application surface presented to the user.
type Mode string

const (
	ModeLogin     Mode = "login"
	ModeJobSeeker Mode = "jobseeker"
	ModeRecruiter Mode = "recruiter"
	ModeAdmin     Mode = "admin"
)

// ResolveMode maps a profile's role set to the mode to present. The
// precedence is fixed: JobSeeker wins over Recruiter wins over Admin; a nil
// profile or an unrecognized role set falls back to the login mode.
// Multi-role users never get a choice here.
func ResolveMode(profile *models.UserProfile) Mode {
	switch {
	case profile.HasRole(models.RoleJobSeeker):
		return ModeJobSeeker
	case profile.HasRole(models.RoleRecruiter):
		return ModeRecruiter
	case profile.HasRole(models.RoleAdmin):
		return ModeAdmin
	default:
		return ModeLogin
	}
}
