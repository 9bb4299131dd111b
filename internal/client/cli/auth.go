package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// Login runs the two-step email flow: request a verification code, then
// redeem it. The code is read without echo. Success and failure are reported
// through notifications, so handlers here only surface input errors.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.RequestCode(ctx, email); err != nil {
		return err
	}

	code, err := getSecret(os.Stdout, "Enter verification code")
	if err != nil {
		return err
	}

	return a.session.RedeemCode(ctx, email, code)
}

// Verify re-prompts for a code using the email the last login request
// targeted, so a mistyped code does not force a fresh email prompt.
func (a *App) Verify(ctx context.Context) error {
	email := a.session.PendingEmail()
	if email == "" {
		printlnFn("No pending verification. Type 'login' first.")
		return nil
	}

	code, err := getSecret(os.Stdout, "Enter verification code")
	if err != nil {
		return err
	}

	return a.session.RedeemCode(ctx, email, code)
}

// Logout ends the session. The local session is always cleared, even when
// the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *App) whoami(ctx context.Context) {
	snap := a.session.Snapshot()
	if !snap.IsAuthenticated || snap.User == nil {
		printlnFn("Not logged in.")
		return
	}
	u := snap.User
	printlnFn(fmt.Sprintf("%s <%s>", u.Name, u.Email))
}
