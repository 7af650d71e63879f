package session

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/iprlic/vern-raspored/internal/logger"
)

// DefaultTimeout bounds every individual request.
const DefaultTimeout = 20 * time.Second

// Options configures a Session. The zero value gives no wait gate, the default
// timeout, the default User-Agent pool and no proxy.
type Options struct {
	// Wait is the minimum spacing between two consecutive requests.
	Wait time.Duration
	// Timeout bounds a single request, redirects included.
	Timeout time.Duration
	// UserAgents supplies the User-Agent header.
	UserAgents UserAgentProvider
	// Rewriter maps request URLs, e.g. a ProxyRewriter.
	Rewriter URLRewriter
	// Metrics receives request counters and timings. Defaults to the
	// package-level logger metrics.
	Metrics *logger.Metrics
}

// Response is what a request produced.
type Response struct {
	// URL is the final URL after redirects.
	URL        string
	StatusCode int
	Body       []byte
}

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code: %d", e.Method, e.URL, e.StatusCode)
}

// Session is a cookie-keeping HTTP client with request pacing.
type Session struct {
	http    *resty.Client
	gate    *rate.Limiter
	agents  UserAgentProvider
	rewrite URLRewriter
	metrics *logger.Metrics
}

// New creates a Session with its own cookie jar.
func New(opts Options) (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	s := &Session{
		agents:  opts.UserAgents,
		rewrite: opts.Rewriter,
		metrics: opts.Metrics,
	}
	if s.agents == nil {
		s.agents = DefaultUserAgents
	}
	if s.rewrite == nil {
		s.rewrite = identity{}
	}
	if s.metrics == nil {
		s.metrics = logger.DefaultMetrics()
	}
	if opts.Wait > 0 {
		s.gate = rate.NewLimiter(rate.Every(opts.Wait), 1)
	}

	s.http = resty.New().
		SetCookieJar(jar).
		SetTimeout(timeout)
	instrument(s.http, s.metrics)

	return s, nil
}

// Get fetches target.
func (s *Session) Get(ctx context.Context, target string) (*Response, error) {
	return s.do(ctx, resty.MethodGet, target, nil)
}

// Post submits form to target as application/x-www-form-urlencoded.
func (s *Session) Post(ctx context.Context, target string, form map[string]string) (*Response, error) {
	return s.do(ctx, resty.MethodPost, target, form)
}

func (s *Session) do(ctx context.Context, method, target string, form map[string]string) (*Response, error) {
	if s.gate != nil {
		if err := s.gate.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting before %s %s: %w", method, target, err)
		}
	}

	req := s.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", s.agents.UserAgent())
	if form != nil {
		req.SetFormData(form)
	}

	res, err := req.Execute(method, s.rewrite.Rewrite(target))
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}

	if !res.IsSuccess() {
		s.metrics.IncrCounter("http.errors")
		return nil, &StatusError{Method: method, URL: target, StatusCode: res.StatusCode()}
	}

	return &Response{
		URL:        finalURL(res, target),
		StatusCode: res.StatusCode(),
		Body:       res.Body(),
	}, nil
}

func finalURL(res *resty.Response, fallback string) string {
	if res.RawResponse == nil || res.RawResponse.Request == nil {
		return fallback
	}
	return res.RawResponse.Request.URL.String()
}

// instrument hooks request logging and metrics into the client. Form bodies are
// never logged since the login postback carries the password.
func instrument(client *resty.Client, metrics *logger.Metrics) {
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		metrics.IncrCounter("http.requests")
		logger.Debug("start request", logger.Fields{
			"method": req.Method,
			"url":    req.URL,
		})
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		metrics.RecordTiming("http.request", res.Time())
		logger.Debug("request finished", logger.Fields{
			"method":  res.Request.Method,
			"url":     res.Request.URL,
			"status":  res.StatusCode(),
			"elapsed": res.Time().String(),
		})
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		metrics.IncrCounter("http.errors")
		logger.Warn("request failed", logger.Fields{
			"method": req.Method,
			"url":    req.URL,
			"error":  err.Error(),
		})
	})
}
