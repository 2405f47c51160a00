package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/minhvng/recruitcli/internal/client/api"
	"github.com/minhvng/recruitcli/internal/client/config"
	"github.com/minhvng/recruitcli/internal/client/repositories/tokens"
	"github.com/minhvng/recruitcli/internal/client/services"
	"github.com/minhvng/recruitcli/internal/filex"
	"github.com/minhvng/recruitcli/internal/logging"

	_ "modernc.org/sqlite"
)

// App glues the services together behind the interactive REPL.
type App struct {
	config  *config.Config
	client  api.Client
	session services.SessionService
	resumes services.ResumeService
	logger  logging.Logger
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	// Make sure the database directory exists before sqlite opens the file.
	if dir := filepath.Dir(c.DatabasePath); dir != "." && dir != string(filepath.Separator) {
		if _, err := filex.EnsureSubdDir(dir); err != nil {
			return nil, err
		}
	}

	db, err := tokens.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	transport := api.NewHTTPTransport(c.ServerAddr, c.RequestTimeout, logger)
	apiClient := api.NewRESTClient(transport)

	repo := tokens.NewSQLiteRepository(db)
	session := services.NewSessionService(apiClient, repo, logger)
	resumes := services.NewResumeService(apiClient, session, logger)

	return &App{
		config:  c,
		client:  apiClient,
		session: session,
		resumes: resumes,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores the persisted session, shows the resolved mode and hands
// control to the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	status := a.session.Restore(ctx)
	snap := a.session.Snapshot()

	fmt.Println("Welcome to recruitcli (type 'help' for commands)")
	if status == services.StatusAuthenticated {
		fmt.Printf("Restored session for %s (%s mode)\n", snap.Profile.Username, services.ResolveMode(snap.Profile))
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Status == services.StatusAuthenticated
}

// getStatus renders the prompt suffix: "(username mode)" when logged in,
// empty otherwise.
func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	if snap.Status != services.StatusAuthenticated || snap.Profile == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", snap.Profile.Username, services.ResolveMode(snap.Profile))
}
