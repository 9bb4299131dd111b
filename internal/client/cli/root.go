package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dverenev/priceadmin/internal/client/notify"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Verify(ctx context.Context) error
	Logout(ctx context.Context) error
	list(ctx context.Context, args []string)
	show(ctx context.Context)
	create(ctx context.Context)
	edit(ctx context.Context)
	delete(ctx context.Context)
	bulkDelete(ctx context.Context)
	whoami(ctx context.Context)
	themeCmd(ctx context.Context, args []string)
}

// runREPL reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the user
// types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report their
// own failures. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pl %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist [search], show, create, edit, delete, bulkdelete, whoami, theme, logout, exit")
			} else {
				printlnFn("Available commands: login, verify, theme, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			if !a.isLoggedIn() {
				printlnFn("Log in first: type 'login'.")
				continue
			}
			a.list(ctx, args)

		case "show":
			if !a.isLoggedIn() {
				printlnFn("Log in first: type 'login'.")
				continue
			}
			a.show(ctx)

		case "create":
			if !a.isLoggedIn() {
				printlnFn("Log in first: type 'login'.")
				continue
			}
			a.create(ctx)

		case "edit":
			if !a.isLoggedIn() {
				printlnFn("Log in first: type 'login'.")
				continue
			}
			a.edit(ctx)

		case "delete":
			if !a.isLoggedIn() {
				printlnFn("Log in first: type 'login'.")
				continue
			}
			a.delete(ctx)

		case "bulkdelete":
			if !a.isLoggedIn() {
				printlnFn("Log in first: type 'login'.")
				continue
			}
			a.bulkDelete(ctx)

		case "whoami":
			a.whoami(ctx)

		case "theme":
			a.themeCmd(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	if snap.IsAuthenticated && snap.User != nil {
		return fmt.Sprintf("(%s)", snap.User.Email)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Price list admin CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func formatToast(t notify.Toast) string {
	return fmt.Sprintf("[%s] %s", t.Variant, t.Message)
}
