// Package devserver implements a self-contained development backend for the
// price list admin CLI: the email code login flow, JWT-guarded profile and
// price list endpoints, and the response envelope the client transport
// expects. State lives in memory; verification codes are printed to the log
// instead of being emailed.
package devserver
