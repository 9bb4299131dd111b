package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls    []string
	listArgs []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Verify(ctx context.Context) error {
	f.calls = append(f.calls, "verify")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) list(ctx context.Context, args []string) {
	f.calls = append(f.calls, "list")
	f.listArgs = args
}
func (f *fakeExec) show(ctx context.Context)       { f.calls = append(f.calls, "show") }
func (f *fakeExec) create(ctx context.Context)     { f.calls = append(f.calls, "create") }
func (f *fakeExec) edit(ctx context.Context)       { f.calls = append(f.calls, "edit") }
func (f *fakeExec) delete(ctx context.Context)     { f.calls = append(f.calls, "delete") }
func (f *fakeExec) bulkDelete(ctx context.Context) { f.calls = append(f.calls, "bulkdelete") }
func (f *fakeExec) whoami(ctx context.Context)     { f.calls = append(f.calls, "whoami") }
func (f *fakeExec) themeCmd(ctx context.Context, args []string) {
	f.calls = append(f.calls, "theme")
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"list wholesale pricing",
		"show",
		"create",
		"edit",
		"delete",
		"bulkdelete",
		"whoami",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "list", "show", "create", "edit", "delete", "bulkdelete", "whoami"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}

	if len(exec.listArgs) != 2 || exec.listArgs[0] != "wholesale" {
		t.Fatalf("list args not forwarded: %v", exec.listArgs)
	}
}

func TestRunREPL_CommandsRequireLogin(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("list\nshow\ncreate\nedit\ndelete\nbulkdelete\nquit\n")
	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls while logged out: %v", exec.calls)
	}
}

func TestRunREPL_ThemeWorksLoggedOut(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("theme dark\nexit\n")
	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "theme" {
		t.Fatalf("theme not dispatched: %v", exec.calls)
	}
}
