package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	Avatar(ctx context.Context) error
	Password(ctx context.Context) error
	SwitchRole(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Upload(ctx context.Context) error
	Rename(ctx context.Context) error
	Delete(ctx context.Context) error
	Activate(ctx context.Context) error
	Deactivate(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the recruitcli client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - list           — list resumes
//	  - show           — show a single resume (interactive ID prompt)
//	  - upload         — upload a resume file
//	  - rename         — change a resume title
//	  - delete         — delete a resume (with confirmation)
//	  - activate       — make a resume the active one
//	  - deactivate     — clear a resume's active flag
//	  - whoami         — show the cached profile
//	  - profile        — edit profile fields
//	  - avatar         — upload an avatar image
//	  - password       — change the account password
//	  - switchrole     — switch the active role
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("recruit %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, show, upload, rename, delete, activate, deactivate, whoami, profile, avatar, password, switchrole, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "avatar":
			_ = a.Avatar(ctx)

		case "password":
			_ = a.Password(ctx)

		case "switchrole":
			_ = a.SwitchRole(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "upload":
			_ = a.Upload(ctx)

		case "rename":
			_ = a.Rename(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "activate":
			_ = a.Activate(ctx)

		case "deactivate":
			_ = a.Deactivate(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
