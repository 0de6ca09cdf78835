// Package actions holds the one place that decides how the outcome of a side-effecting
// request against the bookstore is surfaced to the user.
package actions

import (
	"errors"

	"bookstore-client/internal/bookstore"
	"bookstore-client/internal/components/assert"
	"bookstore-client/internal/components/telemetry"
)

const report_policy_report = "policy.report"

type Outcome int

const (
	Succeeded Outcome = iota
	AuthRequired
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case AuthRequired:
		return "auth-required"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Notifier is the user-visible surface a Policy reports to.
type Notifier interface {
	// Notify surfaces a confirmation.
	Notify(message string)
	// Fail surfaces an error.
	Fail(message string)
	// RedirectToLogin sends the user to the login entry point.
	RedirectToLogin(entry string)
}

type Messages struct {
	Success string
	Failure string
}

type Policy struct {
	notifier   Notifier
	loginEntry string
	tel        telemetry.API
}

func NewPolicy(notifier Notifier, loginEntry string, tel telemetry.API) Policy {
	assert.NotNil(notifier)
	assert.NotNil(tel)
	assert.NotEmptyStr(loginEntry)

	return Policy{
		notifier:   notifier,
		loginEntry: loginEntry,
		tel:        telemetry.NewScopedAPI("actions", tel),
	}
}

func (p Policy) Notifier() Notifier {
	return p.notifier
}

// Report classifies `err` and surfaces it: nil is a success, 401/403 redirects to
// the login entry point, anything else is a failure carrying the server's message.
func (p Policy) Report(err error, msgs Messages) Outcome {
	if err == nil {
		if msgs.Success != "" {
			p.notifier.Notify(msgs.Success)
		}
		return Succeeded
	}

	if errors.Is(err, bookstore.ErrAuthRequired) {
		p.tel.ReportDebug(report_policy_report, "auth required", err)
		p.notifier.RedirectToLogin(p.loginEntry)
		return AuthRequired
	}

	message := msgs.Failure
	if message == "" {
		message = "Request failed"
	}
	if detail := bookstore.ServerMessage(err); detail != "" {
		message += ": " + detail
	} else if errors.Is(err, bookstore.ErrNetwork) {
		message += ": could not reach the bookstore"
	}
	p.tel.ReportDebug(report_policy_report, "failed", err)
	p.notifier.Fail(message)
	return Failed
}
