// Package session keeps the bookstore session cookie between CLI invocations.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"bookstore-client/internal/components/assert"
	"bookstore-client/internal/components/telemetry"
)

const (
	report_store_load  = "store.load"
	report_store_save  = "store.save"
	report_store_clear = "store.clear"
)

type Store struct {
	db  *sql.DB
	tel telemetry.API
	now func() time.Time
}

func NewStore(db *sql.DB, tel telemetry.API) Store {
	assert.NotNil(db)
	assert.NotNil(tel)
	return Store{
		db:  db,
		tel: telemetry.NewScopedAPI("session", tel),
		now: time.Now,
	}
}

// Open opens the session database at `path`.
func Open(path string, tel telemetry.API) (Store, error) {
	db, err := OpenDB(path)
	if err != nil {
		return Store{}, err
	}
	return NewStore(db, tel), nil
}

func (s Store) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Load returns the unexpired cookies saved for `baseUrl`.
func (s Store) Load(ctx context.Context, baseUrl string) ([]*http.Cookie, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`select name, value, path, domain, expires, secure, http_only
		from session_cookie
		where base_url = ? and (expires = 0 or expires > ?)`,
		baseUrl, s.now().Unix(),
	)
	if err != nil {
		s.tel.ReportBroken(report_store_load, err, baseUrl)
		return nil, fmt.Errorf("load session: %w", err)
	}
	defer rows.Close()

	var cookies []*http.Cookie
	for rows.Next() {
		var (
			cookie   http.Cookie
			expires  int64
			secure   int
			httpOnly int
		)
		err = rows.Scan(&cookie.Name, &cookie.Value, &cookie.Path, &cookie.Domain, &expires, &secure, &httpOnly)
		if err != nil {
			s.tel.ReportBroken(report_store_load, err, baseUrl)
			return nil, fmt.Errorf("load session: %w", err)
		}
		if expires > 0 {
			cookie.Expires = time.Unix(expires, 0)
		}
		cookie.Secure = secure != 0
		cookie.HttpOnly = httpOnly != 0
		cookies = append(cookies, &cookie)
	}
	if err = rows.Err(); err != nil {
		s.tel.ReportBroken(report_store_load, err, baseUrl)
		return nil, fmt.Errorf("load session: %w", err)
	}

	s.tel.ReportDebug(report_store_load, baseUrl, len(cookies))
	return cookies, nil
}

// Save replaces the cookies saved for `baseUrl` with `cookies`.
func (s Store) Save(ctx context.Context, baseUrl string, cookies []*http.Cookie) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.tel.ReportBroken(report_store_save, err, baseUrl)
		return fmt.Errorf("save session: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "delete from session_cookie where base_url = ?", baseUrl)
	if err != nil {
		s.tel.ReportBroken(report_store_save, err, baseUrl)
		return fmt.Errorf("save session: %w", err)
	}

	for _, cookie := range cookies {
		var expires int64
		if !cookie.Expires.IsZero() {
			expires = cookie.Expires.Unix()
		}
		_, err = tx.ExecContext(
			ctx,
			`insert or replace into session_cookie(base_url, name, value, path, domain, expires, secure, http_only)
			values (?, ?, ?, ?, ?, ?, ?, ?)`,
			baseUrl, cookie.Name, cookie.Value, cookie.Path, cookie.Domain,
			expires, boolInt(cookie.Secure), boolInt(cookie.HttpOnly),
		)
		if err != nil {
			s.tel.ReportBroken(report_store_save, err, baseUrl, cookie.Name)
			return fmt.Errorf("save session: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		s.tel.ReportBroken(report_store_save, err, baseUrl)
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s Store) Clear(ctx context.Context, baseUrl string) error {
	_, err := s.db.ExecContext(ctx, "delete from session_cookie where base_url = ?", baseUrl)
	if err != nil {
		s.tel.ReportBroken(report_store_clear, err, baseUrl)
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
