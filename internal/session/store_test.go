package session

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"bookstore-client/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) Store {
	t.Helper()
	store, err := Open(":memory:", &telemetry.Recorder{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveLoadClear(t *testing.T) {
	store := setup(t)
	ctx := context.Background()
	const baseUrl = "http://localhost:8080/api"

	cookies, err := store.Load(ctx, baseUrl)
	require.NoError(t, err)
	require.Empty(t, cookies)

	err = store.Save(ctx, baseUrl, []*http.Cookie{
		{Name: "JSESSIONID", Value: "abc", Path: "/", HttpOnly: true},
	})
	require.NoError(t, err)

	// other base urls are kept apart
	err = store.Save(ctx, "http://other:8080/api", []*http.Cookie{{Name: "JSESSIONID", Value: "zzz"}})
	require.NoError(t, err)

	cookies, err = store.Load(ctx, baseUrl)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	require.Equal(t, "abc", cookies[0].Value)
	require.Equal(t, "/", cookies[0].Path)
	require.True(t, cookies[0].HttpOnly)
	require.False(t, cookies[0].Secure)

	// saving replaces everything previously saved
	err = store.Save(ctx, baseUrl, []*http.Cookie{{Name: "JSESSIONID", Value: "def", Path: "/"}})
	require.NoError(t, err)
	cookies, err = store.Load(ctx, baseUrl)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	require.Equal(t, "def", cookies[0].Value)

	require.NoError(t, store.Clear(ctx, baseUrl))
	cookies, err = store.Load(ctx, baseUrl)
	require.NoError(t, err)
	require.Empty(t, cookies)

	cookies, err = store.Load(ctx, "http://other:8080/api")
	require.NoError(t, err)
	require.Len(t, cookies, 1)
}

func TestLoadSkipsExpired(t *testing.T) {
	store := setup(t)
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }

	err := store.Save(ctx, "base", []*http.Cookie{
		{Name: "expired", Value: "1", Expires: now.Add(-time.Minute)},
		{Name: "valid", Value: "2", Expires: now.Add(time.Hour)},
		{Name: "session", Value: "3"},
	})
	require.NoError(t, err)

	cookies, err := store.Load(ctx, "base")
	require.NoError(t, err)

	names := []string{}
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	require.ElementsMatch(t, []string{"valid", "session"}, names)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.db")
	store, err := Open(path, &telemetry.Recorder{})
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), "base", []*http.Cookie{{Name: "a", Value: "b"}}))
	require.NoError(t, store.Close())

	reopened, err := Open(path, &telemetry.Recorder{})
	require.NoError(t, err)
	defer reopened.Close()
	cookies, err := reopened.Load(context.Background(), "base")
	require.NoError(t, err)
	require.Len(t, cookies, 1)
}
