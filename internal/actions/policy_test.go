package actions

import (
	"fmt"
	"testing"

	"bookstore-client/internal/bookstore"
	"bookstore-client/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	notified   []string
	failed     []string
	redirected []string
}

func (f *fakeNotifier) Notify(message string)        { f.notified = append(f.notified, message) }
func (f *fakeNotifier) Fail(message string)          { f.failed = append(f.failed, message) }
func (f *fakeNotifier) RedirectToLogin(entry string) { f.redirected = append(f.redirected, entry) }

func TestReport(t *testing.T) {
	msgs := Messages{Success: "Added to cart!", Failure: "Failed to add to cart"}

	table := []struct {
		name           string
		err            error
		expect         Outcome
		expectNotified []string
		expectFailed   []string
		expectRedirect []string
	}{
		{
			name:           "success",
			expect:         Succeeded,
			expectNotified: []string{"Added to cart!"},
		},
		{
			name:           "unauthorized",
			err:            &bookstore.StatusError{Code: 401},
			expect:         AuthRequired,
			expectRedirect: []string{"bookstore-cli login"},
		},
		{
			name:           "forbidden wrapped",
			err:            fmt.Errorf("add: %w", &bookstore.StatusError{Code: 403}),
			expect:         AuthRequired,
			expectRedirect: []string{"bookstore-cli login"},
		},
		{
			name:         "server error with message",
			err:          &bookstore.StatusError{Code: 500, Message: "Could not add to cart"},
			expect:       Failed,
			expectFailed: []string{"Failed to add to cart: Could not add to cart"},
		},
		{
			name:         "network",
			err:          fmt.Errorf("%w: dial tcp", bookstore.ErrNetwork),
			expect:       Failed,
			expectFailed: []string{"Failed to add to cart: could not reach the bookstore"},
		},
	}

	for _, row := range table {
		notifier := &fakeNotifier{}
		policy := NewPolicy(notifier, "bookstore-cli login", &telemetry.Recorder{})

		outcome := policy.Report(row.err, msgs)
		require.Equal(t, row.expect, outcome, row.name)
		require.Equal(t, row.expectNotified, notifier.notified, row.name)
		require.Equal(t, row.expectFailed, notifier.failed, row.name)
		require.Equal(t, row.expectRedirect, notifier.redirected, row.name)
	}
}

func TestReportDefaultFailureMessage(t *testing.T) {
	notifier := &fakeNotifier{}
	policy := NewPolicy(notifier, "login", &telemetry.Recorder{})

	outcome := policy.Report(&bookstore.StatusError{Code: 500}, Messages{})
	require.Equal(t, Failed, outcome)
	require.Equal(t, []string{"Request failed"}, notifier.failed)
	require.Equal(t, "failed", outcome.String())
}
