// client.go contains the http plumbing shared by every endpoint of the bookstore api,
// the endpoints themselves live in the other files of this package.

package bookstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"bookstore-client/internal/components/assert"
	"bookstore-client/internal/components/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("bookstore/client")

type ClientOptions struct {
	BaseUrl string
	// defaults to 30 seconds
	Timeout time.Duration
	// 0 means no limit
	RequestsPerSecond float64
	// session cookies restored from a previous run
	Cookies []*http.Cookie
}

type Client struct {
	baseUrl *url.URL
	http    *resty.Client
	jar     http.CookieJar
	tel     telemetry.API

	// the jar only hands back names and values, the attributes of every cookie the
	// server set are kept here so a session can be saved as it was received.
	mu       sync.Mutex
	received map[string]*http.Cookie
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)
	assert.NotEmptyStr(opts.BaseUrl)

	tel = telemetry.NewScopedAPI("bookstore", tel)

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseUrl)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	if len(opts.Cookies) > 0 {
		jar.SetCookies(baseUrl, opts.Cookies)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Second * 30
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	httpClient.SetCookieJar(jar)
	httpClient.SetTimeout(timeout)
	httpClient.SetHeader("Accept", "application/json")
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))

	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel)

	client := &Client{
		baseUrl:  baseUrl,
		http:     httpClient,
		jar:      jar,
		tel:      tel,
		received: map[string]*http.Cookie{},
	}
	client.keepCookies(opts.Cookies)
	httpClient.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		client.keepCookies(res.Cookies())
		return nil
	})
	return client, nil
}

// keepCookies records the attributes of `cookies`, a cookie that is being deleted
// (negative max age or an expiry in the past) is forgotten.
func (c *Client) keepCookies(cookies []*http.Cookie) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for _, cookie := range cookies {
		kept := *cookie
		if kept.MaxAge > 0 {
			kept.Expires = now.Add(time.Duration(kept.MaxAge) * time.Second)
		}
		expired := kept.MaxAge < 0 || (!kept.Expires.IsZero() && !kept.Expires.After(now))
		if expired {
			delete(c.received, kept.Name)
			continue
		}
		kept.MaxAge = 0
		kept.Raw = ""
		c.received[kept.Name] = &kept
	}
}

func (c *Client) BaseUrl() string {
	return c.baseUrl.String()
}

// Cookies returns the session cookies currently held for the base url, with the
// attributes the server set them with.
func (c *Client) Cookies() []*http.Cookie {
	c.mu.Lock()
	defer c.mu.Unlock()

	held := c.jar.Cookies(c.baseUrl)
	out := make([]*http.Cookie, len(held))
	for i, cookie := range held {
		received, ok := c.received[cookie.Name]
		if ok && received.Value == cookie.Value {
			kept := *received
			out[i] = &kept
			continue
		}
		out[i] = cookie
	}
	return out
}

// ClearCookies forgets the current session.
func (c *Client) ClearCookies() error {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.received = map[string]*http.Cookie{}
	c.mu.Unlock()

	c.jar = jar
	c.http.SetCookieJar(jar)
	return nil
}

func (c *Client) execute(ctx context.Context, req *resty.Request, method, path string) (*resty.Response, error) {
	res, err := req.SetContext(ctx).Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}
	if !res.IsSuccess() {
		return res, newStatusError(res)
	}
	return res, nil
}

func decode[T any](res *resty.Response) (T, error) {
	var out T
	err := json.Unmarshal(res.Body(), &out)
	if err != nil {
		return out, fmt.Errorf("decode %s %s: %w", res.Request.Method, res.Request.URL, err)
	}
	return out, nil
}

// fail records `err` on the span and reports it, status errors are expected outcomes
// of the api (ex. a missing session) so they are only warnings.
func (c *Client) fail(span trace.Span, report string, err error, params ...any) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		c.tel.ReportWarning(report, append([]any{err}, params...)...)
		return err
	}
	c.tel.ReportBroken(report, append([]any{err}, params...)...)
	return err
}
