package browse

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"bookstore-client/internal/actions"
	"bookstore-client/internal/bookstore"
	"bookstore-client/internal/catalog"
	"bookstore-client/internal/components/telemetry"
	"bookstore-client/internal/termui"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu       sync.Mutex
	loggedIn bool
	added    []string
	queries  []string
}

func (f *fakeStore) handler(t *testing.T) http.Handler {
	writeJson := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(v)
	}
	page := func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.queries = append(f.queries, r.URL.Path+"?"+r.URL.RawQuery)
		f.mu.Unlock()

		number, err := strconv.Atoi(r.URL.Query().Get("page"))
		require.NoError(t, err)
		writeJson(w, http.StatusOK, map[string]any{
			"content": []map[string]any{
				{"id": 1, "title": "Dune", "author": "Frank Herbert", "category": "Sci-Fi", "price": 9.99, "stock": 2},
				{"id": 2, "title": "Emma", "author": "Jane Austen", "category": "Classic", "price": 4.5, "stock": 0},
			},
			"number":     number,
			"totalPages": 2,
			"first":      number == 0,
			"last":       number == 1,
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/catalog", page)
	mux.HandleFunc("/api/catalog/search", page)
	mux.HandleFunc("/api/catalog/category", page)
	mux.HandleFunc("/api/cart/add", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, err := r.Cookie("JSESSIONID"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.added = append(f.added, r.URL.Query().Get("bookId"))
		writeJson(w, http.StatusOK, map[string]any{})
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "s1", Path: "/"})
		writeJson(w, http.StatusOK, bookstore.User{Id: 1, UserName: body["userName"], Role: bookstore.RoleUser})
	})
	return mux
}

func TestSession(t *testing.T) {
	store := &fakeStore{}
	server := httptest.NewServer(store.handler(t))
	defer server.Close()

	rec := &telemetry.Recorder{}
	client, err := bookstore.NewClient(bookstore.ClientOptions{
		BaseUrl: server.URL + "/api",
		Timeout: time.Second * 5,
	}, rec)
	require.NoError(t, err)

	var out bytes.Buffer
	notifier := termui.NewNotifier(&out)
	policy := actions.NewPolicy(notifier, LoginEntry, rec)
	controller := catalog.NewController(client, client, termui.NewCatalogView(&out), policy, rec, catalog.Options{
		PageSize: 8,
		Timeout:  time.Second * 5,
	})

	var loggedIn []string
	session := NewSession(Options{
		Controller: controller,
		Auth:       client,
		Policy:     policy,
		Out:        &out,
		OnLogin: func(ctx context.Context, user bookstore.User) error {
			loggedIn = append(loggedIn, user.UserName)
			return nil
		},
	}, rec)

	input := strings.Join([]string{
		"search dune",
		"p",
		"n",
		"n",
		"a 1",
		"a 2",
		"a 99",
		"login ana wrong",
		"login ana secret",
		"a 1",
		"bogus",
		"q",
		"s never reached",
	}, "\n")
	require.NoError(t, session.Run(context.Background(), strings.NewReader(input)))

	printed := out.String()
	require.Contains(t, printed, "Already on the first page.")
	require.Contains(t, printed, "Already on the last page.")
	require.Contains(t, printed, "Please login first: "+LoginEntry)
	require.Contains(t, printed, catalog.OutOfStockLabel)
	require.Contains(t, printed, "Book 99 is not on this page.")
	require.Contains(t, printed, "Invalid username or password.")
	require.Contains(t, printed, "Welcome, ana!")
	require.Contains(t, printed, "Added to cart!")
	require.Contains(t, printed, `Unknown command "bogus"`)

	require.Equal(t, []string{"ana"}, loggedIn)
	require.Equal(t, []string{"1"}, store.added)
	require.Equal(t, []string{
		"/api/catalog?page=0&size=8",
		"/api/catalog/search?keyword=dune&page=0&size=8",
		"/api/catalog/search?keyword=dune&page=1&size=8",
	}, store.queries)
}

func TestExecuteUsage(t *testing.T) {
	rec := &telemetry.Recorder{}
	var out bytes.Buffer
	notifier := termui.NewNotifier(&out)
	policy := actions.NewPolicy(notifier, LoginEntry, rec)

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()
	client, err := bookstore.NewClient(bookstore.ClientOptions{BaseUrl: server.URL}, rec)
	require.NoError(t, err)

	controller := catalog.NewController(client, client, termui.NewCatalogView(&out), policy, rec, catalog.Options{PageSize: 8})
	session := NewSession(Options{Controller: controller, Auth: client, Policy: policy, Out: &out}, rec)

	ctx := context.Background()
	table := []struct {
		line     string
		contains string
	}{
		{line: "add", contains: "usage: add <book id>"},
		{line: "a x", contains: `invalid book id "x"`},
		{line: "page 0", contains: "Page numbers start at 1."},
		{line: "login ana", contains: "usage: " + LoginEntry},
		{line: "help", contains: "search by keyword"},
	}
	for _, row := range table {
		out.Reset()
		require.False(t, session.Execute(ctx, row.line), row.line)
		require.Contains(t, out.String(), row.contains, row.line)
	}

	require.False(t, session.Execute(ctx, "   "))
	require.True(t, session.Execute(ctx, "QUIT"))
}
