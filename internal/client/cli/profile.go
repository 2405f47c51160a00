package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/minhvng/recruitcli/internal/client/api"
	"github.com/minhvng/recruitcli/internal/client/models"
)

// Profile prompts for new profile field values and sends the edit. Empty
// answers leave the corresponding field unchanged.
func (a *App) Profile(ctx context.Context) error {
	var patch api.ProfileUpdate

	email, err := getSimpleText(a.reader, "Enter email (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if email != "" {
		patch.Email = &email
	}

	firstName, err := getSimpleText(a.reader, "Enter first name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if firstName != "" {
		patch.FirstName = &firstName
	}

	lastName, err := getSimpleText(a.reader, "Enter last name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if lastName != "" {
		patch.LastName = &lastName
	}

	if patch.Email == nil && patch.FirstName == nil && patch.LastName == nil {
		fmt.Println("Nothing to update")
		return nil
	}

	profile, err := a.session.UpdateProfile(ctx, patch)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("Profile updated for %s\n", profile.Username)
	return nil
}

// Avatar prompts for an image path and uploads it as the profile picture.
func (a *App) Avatar(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Enter path to avatar image", os.Stdout)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	defer f.Close()

	profile, err := a.session.UploadAvatar(ctx, api.FormFile{
		FieldName: "avatar",
		FileName:  filepath.Base(path),
		Content:   f,
	})
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if profile.AvatarURL != nil {
		fmt.Printf("Avatar uploaded: %s\n", *profile.AvatarURL)
	} else {
		fmt.Println("Avatar uploaded")
	}
	return nil
}

// Password prompts for the current and a new password and changes it.
func (a *App) Password(ctx context.Context) error {
	oldPassword, err := getPassword(os.Stdout, "Enter current password")
	if err != nil {
		return err
	}

	newPassword, err := getPassword(os.Stdout, "Enter new password")
	if err != nil {
		return err
	}

	if err := a.session.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Println("Password changed")
	return nil
}

// SwitchRole lists the roles known to the server and switches the active one.
func (a *App) SwitchRole(ctx context.Context) error {
	roles, err := a.client.Roles(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Println("Available roles:")
	for _, r := range roles {
		fmt.Printf("  %s\n", r)
	}

	answer, err := getSimpleText(a.reader, "Enter role to switch to", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.SwitchRole(ctx, models.Role(answer)); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("Switched to role %s\n", answer)
	return nil
}
