package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/minhvng/recruitcli/internal/client/api"
	"github.com/minhvng/recruitcli/internal/client/models"
	"github.com/minhvng/recruitcli/internal/client/services"
)

func printResume(r models.Resume) {
	marker := " "
	if r.IsActive {
		marker = "*"
	}
	fmt.Printf("%s %s  %s\n", marker, r.ID, r.Title)
}

// List prints the user's resumes; the active one is marked with an asterisk.
func (a *App) List(ctx context.Context) error {
	items, err := a.resumes.List(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if len(items) == 0 {
		fmt.Println("No resumes yet")
		return nil
	}
	for _, item := range items {
		printResume(item)
	}
	return nil
}

// Show fetches and prints a single resume.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter resume id to show", os.Stdout)
	if err != nil {
		return err
	}

	r, err := a.resumes.Get(ctx, id)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	if r == nil {
		fmt.Println("Resume not found")
		return nil
	}

	fmt.Printf("Title: %s\n", r.Title)
	fmt.Printf("File: %s\n", r.FileURL)
	fmt.Printf("Active: %v\n", r.IsActive)
	return nil
}

// Upload prompts for a file path and title, starts the upload and renders
// the progress ramp until the server answers.
func (a *App) Upload(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Enter path to resume file", os.Stdout)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Enter title (empty to use the file name)", os.Stdout)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	defer f.Close()

	task, err := a.resumes.Upload(ctx, api.FormFile{
		FieldName: "file_path",
		FileName:  filepath.Base(path),
		Content:   f,
	}, title)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fmt.Printf("\rUploading %s... %d%%", task.FileName, task.Progress())
		case <-task.Done():
			fmt.Printf("\rUploading %s... %d%%\n", task.FileName, task.Progress())
			resume, err := task.Result()
			if err != nil {
				log.Printf("Upload failed: %s", err.Error())
				return err
			}
			fmt.Printf("Uploaded %s (id %s)\n", resume.Title, resume.ID)
			return nil
		case <-ctx.Done():
			task.Cancel()
			return ctx.Err()
		}
	}
}

// Rename changes a resume's title.
func (a *App) Rename(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter resume id to rename", os.Stdout)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Enter new title", os.Stdout)
	if err != nil {
		return err
	}

	r, err := a.resumes.Update(ctx, id, services.ResumePatch{Title: &title})
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	if r == nil {
		fmt.Println("Renamed")
		return nil
	}

	fmt.Printf("Renamed to %s\n", r.Title)
	return nil
}

// Delete removes a resume after an explicit confirmation.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter resume id to delete", os.Stdout)
	if err != nil {
		return err
	}

	ok, err := getConfirmation(a.reader, fmt.Sprintf("Delete resume %s?", id), os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled")
		return nil
	}

	if err := a.resumes.Remove(ctx, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Println("Deleted")
	return nil
}

// Activate makes a resume the active one and prints the reconciled list.
func (a *App) Activate(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter resume id to activate", os.Stdout)
	if err != nil {
		return err
	}

	a.resumes.SetActivationObserver(func(phase services.ActivationPhase) {
		switch phase {
		case services.PhaseActivating:
			fmt.Println("Activating...")
		case services.PhaseReconciling:
			fmt.Println("Refreshing list...")
		}
	})
	defer a.resumes.SetActivationObserver(nil)

	items, err := a.resumes.Activate(ctx, id)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	for _, item := range items {
		printResume(item)
	}
	return nil
}

// Deactivate clears a resume's active flag.
func (a *App) Deactivate(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter resume id to deactivate", os.Stdout)
	if err != nil {
		return err
	}

	r, err := a.resumes.Deactivate(ctx, id)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	if r == nil {
		fmt.Println("Deactivated")
		return nil
	}

	fmt.Printf("Deactivated %s\n", r.Title)
	return nil
}
