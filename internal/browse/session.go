// Package browse runs the interactive catalog session: every input line is one event
// applied to a catalog.Controller.
package browse

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bookstore-client/internal/actions"
	"bookstore-client/internal/bookstore"
	"bookstore-client/internal/catalog"
	"bookstore-client/internal/components/assert"
	"bookstore-client/internal/components/telemetry"
)

const (
	report_session_command = "session.command"
	report_session_login   = "session.login"
)

// LoginEntry is where a browse session sends the user when a request needs a session.
const LoginEntry = "login <username> <password>"

const helpText = `commands:
  s, search <keyword>      search by keyword (no keyword clears the search)
  c, category <category>   filter by category (no category clears the filter)
  n, next                  next page
  p, prev                  previous page
  g, page <n>              go to page n
  a, add <id>              add a book to the cart
  r, reload                fetch the current page again
  login <user> <password>  sign in
  h, help                  show this message
  q, quit                  leave`

// Authenticator signs a user in, implemented by *bookstore.Client.
type Authenticator interface {
	Login(ctx context.Context, userName, password string) (bookstore.User, error)
}

type Options struct {
	Controller *catalog.Controller
	Auth       Authenticator
	Policy     actions.Policy
	Out        io.Writer
	// called after a successful login, ex. to persist the session
	OnLogin func(ctx context.Context, user bookstore.User) error
}

type Session struct {
	controller *catalog.Controller
	auth       Authenticator
	policy     actions.Policy
	out        io.Writer
	onLogin    func(ctx context.Context, user bookstore.User) error
	tel        telemetry.API
}

func NewSession(opts Options, tel telemetry.API) Session {
	assert.NotNil(opts.Controller)
	assert.NotNil(opts.Auth)
	assert.NotNil(opts.Out)
	assert.NotNil(tel)

	return Session{
		controller: opts.Controller,
		auth:       opts.Auth,
		policy:     opts.Policy,
		out:        opts.Out,
		onLogin:    opts.OnLogin,
		tel:        telemetry.NewScopedAPI("browse", tel),
	}
}

// Run loads the first page then executes every line of `in` until it is
// exhausted, "quit" is read or ctx is cancelled.
func (s Session) Run(ctx context.Context, in io.Reader) error {
	s.controller.Load(ctx)
	s.controller.Wait()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		s.prompt()
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if s.Execute(ctx, line) {
				return nil
			}
		}
	}
}

func (s Session) prompt() {
	fmt.Fprint(s.out, "> ")
}

func rest(fields []string) string {
	return strings.Join(fields[1:], " ")
}

// Execute runs a single command line and waits for the fetch it triggered to
// settle, it returns true when the session should end.
func (s Session) Execute(ctx context.Context, line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	defer s.controller.Wait()

	s.tel.ReportDebug(report_session_command, fields[0])

	notifier := s.policy.Notifier()
	switch strings.ToLower(fields[0]) {
	case "q", "quit", "exit":
		return true
	case "h", "help":
		fmt.Fprintln(s.out, helpText)
	case "s", "search":
		s.controller.SetKeyword(ctx, rest(fields))
	case "c", "category":
		s.controller.SetCategory(ctx, rest(fields))
	case "r", "reload":
		s.controller.Load(ctx)
	case "n", "next":
		_, err := s.controller.Next(ctx)
		if errors.Is(err, catalog.ErrNextUnavailable) {
			notifier.Fail("Already on the last page.")
		}
	case "p", "prev", "previous":
		_, err := s.controller.Previous(ctx)
		if errors.Is(err, catalog.ErrPreviousUnavailable) {
			notifier.Fail("Already on the first page.")
		}
	case "g", "page":
		n, ok := s.intArg(fields, "page number")
		if !ok {
			return false
		}
		if n < 1 {
			notifier.Fail("Page numbers start at 1.")
			return false
		}
		s.controller.SetPage(ctx, int(n-1))
	case "a", "add":
		id, ok := s.intArg(fields, "book id")
		if !ok {
			return false
		}
		s.addToCart(ctx, id)
	case "login":
		if len(fields) != 3 {
			notifier.Fail("usage: " + LoginEntry)
			return false
		}
		s.login(ctx, fields[1], fields[2])
	default:
		notifier.Fail(fmt.Sprintf("Unknown command %q, type 'help' for a list of commands.", fields[0]))
	}
	return false
}

func (s Session) intArg(fields []string, name string) (int64, bool) {
	if len(fields) != 2 {
		s.policy.Notifier().Fail(fmt.Sprintf("usage: %s <%s>", fields[0], name))
		return 0, false
	}
	n, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		s.policy.Notifier().Fail(fmt.Sprintf("invalid %s %q", name, fields[1]))
		return 0, false
	}
	return n, true
}

func (s Session) addToCart(ctx context.Context, id int64) {
	_, err := s.controller.AddToCart(ctx, id)
	switch {
	case errors.Is(err, catalog.ErrNotDisplayed):
		s.policy.Notifier().Fail(fmt.Sprintf("Book %d is not on this page.", id))
	case errors.Is(err, catalog.ErrOutOfStock):
		s.policy.Notifier().Fail(catalog.OutOfStockLabel)
	}
}

func (s Session) login(ctx context.Context, userName, password string) {
	user, err := s.auth.Login(ctx, userName, password)
	if errors.Is(err, bookstore.ErrAuthRequired) {
		s.tel.ReportDebug(report_session_login, userName, err)
		s.policy.Notifier().Fail("Invalid username or password.")
		return
	}
	outcome := s.policy.Report(err, actions.Messages{
		Success: "Welcome, " + userName + "!",
		Failure: "Login failed",
	})
	if outcome != actions.Succeeded || s.onLogin == nil {
		return
	}
	err = s.onLogin(ctx, user)
	if err != nil {
		s.tel.ReportWarning(report_session_login, err, userName)
	}
}
