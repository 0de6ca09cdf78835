package commands

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"bookstore-client/internal/components/telemetry"
	"bookstore-client/internal/config"
	"bookstore-client/internal/session"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	cfg := config.Defaults()
	cfg.SessionDb = filepath.Join(t.TempDir(), "session.db")
	return cfg
}

func TestReleaseRunsInReverse(t *testing.T) {
	var order []int
	var acquired release
	for i := range 3 {
		acquired = append(acquired, func(context.Context) error {
			order = append(order, i)
			if i == 1 {
				return errors.New("close failed")
			}
			return nil
		})
	}

	tel := &telemetry.Recorder{}
	acquired.run(context.Background(), tel)

	require.Equal(t, []int{2, 1, 0}, order)
	require.Len(t, tel.Reports("warning", report_cli_teardown), 1)
}

func TestOpenReleasesOnFailure(t *testing.T) {
	cfg := testConfig(t)
	// not absolute, the client refuses it after the session db is open
	cfg.BaseUrl = "localhost/api"

	value, done, err := open(context.Background(), cfg, io.Discard)
	require.ErrorContains(t, err, "create client")
	require.Nil(t, value)
	require.Nil(t, done)

	// sqlite removes the write-ahead log once the last connection is closed
	require.FileExists(t, cfg.SessionDb)
	require.NoFileExists(t, cfg.SessionDb+"-wal")
}

func TestOpenTeardown(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	value, done, err := open(ctx, cfg, io.Discard)
	require.NoError(t, err)
	require.Equal(t, cfg.BaseUrl, value.Client.BaseUrl())
	require.FileExists(t, cfg.SessionDb+"-wal")

	done(ctx)
	require.NoFileExists(t, cfg.SessionDb+"-wal")

	sessions, err := session.Open(cfg.SessionDb, &telemetry.Recorder{})
	require.NoError(t, err)
	defer sessions.Close()
	cookies, err := sessions.Load(ctx, cfg.BaseUrl)
	require.NoError(t, err)
	require.Empty(t, cookies)
}
