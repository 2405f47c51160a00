// Package models defines the client-side view of users, roles, and resumes.
package models

// Role names a capability granted to a user account. The backend returns
// roles as plain strings; the constants below are the ones the client
// understands.
type Role string

const (
	RoleJobSeeker Role = "JobSeeker"
	RoleRecruiter Role = "Recruiter"
	RoleAdmin     Role = "Admin"
)

// UserProfile is the cached identity of the signed-in user.
type UserProfile struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
	Roles      []Role  `json:"roles"`
	ActiveRole *Role   `json:"active_role,omitempty"`
}

// HasRole reports whether the profile carries the given role.
func (p *UserProfile) HasRole(r Role) bool {
	if p == nil {
		return false
	}
	for _, role := range p.Roles {
		if role == r {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so read-only views handed out to callers
// cannot alias the cached profile.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	if p.AvatarURL != nil {
		v := *p.AvatarURL
		c.AvatarURL = &v
	}
	if p.ActiveRole != nil {
		v := *p.ActiveRole
		c.ActiveRole = &v
	}
	if p.Roles != nil {
		c.Roles = append([]Role(nil), p.Roles...)
	}
	return &c
}

// ProfilePatch carries a partial profile update. Nil fields are left
// untouched by Merge; set fields overwrite, last writer wins.
type ProfilePatch struct {
	Username   *string
	Email      *string
	FirstName  *string
	LastName   *string
	AvatarURL  *string
	Roles      []Role
	ActiveRole *Role
}

// Merge overlays the patch onto the profile field by field. Unset patch
// fields never clobber existing values.
func (p *UserProfile) Merge(patch ProfilePatch) {
	if patch.Username != nil {
		p.Username = *patch.Username
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.FirstName != nil {
		p.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		p.LastName = *patch.LastName
	}
	if patch.AvatarURL != nil {
		p.AvatarURL = patch.AvatarURL
	}
	if patch.Roles != nil {
		p.Roles = append([]Role(nil), patch.Roles...)
	}
	if patch.ActiveRole != nil {
		p.ActiveRole = patch.ActiveRole
	}
}

// PatchFrom builds a ProfilePatch that overlays every field present in the
// given profile. Used to fold a server-returned user object back into the
// session cache without a refetch.
func PatchFrom(u *UserProfile) ProfilePatch {
	if u == nil {
		return ProfilePatch{}
	}
	return ProfilePatch{
		Username:   &u.Username,
		Email:      &u.Email,
		FirstName:  &u.FirstName,
		LastName:   &u.LastName,
		AvatarURL:  u.AvatarURL,
		Roles:      u.Roles,
		ActiveRole: u.ActiveRole,
	}
}
