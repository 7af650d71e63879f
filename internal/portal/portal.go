package portal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding"

	"github.com/iprlic/vern-raspored/internal/session"
	"github.com/iprlic/vern-raspored/internal/webforms"
)

// Portal endpoints, relative to the base URL.
const (
	DefaultBaseURL = "https://eduneta.vern.hr/vern-student/"
	SchedulePath   = "Raspored.aspx"
	LoginPath      = "Login.aspx?ReturnUrl=%2fvern-student%2fdefault.aspx"
)

// Client is the subset of session.Session the portal needs.
type Client interface {
	Get(ctx context.Context, url string) (*session.Response, error)
	Post(ctx context.Context, url string, form map[string]string) (*session.Response, error)
}

// Options configures a Portal.
type Options struct {
	// BaseURL is the portal root, DefaultBaseURL when empty.
	BaseURL string
	// Location is the zone class times are interpreted in.
	Location *time.Location
	// Charset decodes response bodies. Nil parses bodies as UTF-8.
	Charset encoding.Encoding
	// SkipLoginCheck disables the login form check after the login postback.
	SkipLoginCheck bool
}

// Portal performs the scrape against one portal instance.
type Portal struct {
	client     Client
	baseURL    string
	loc        *time.Location
	enc        encoding.Encoding
	checkLogin bool
}

// New creates a Portal that sends its requests through client.
func New(client Client, opts Options) *Portal {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	return &Portal{
		client:     client,
		baseURL:    base,
		loc:        loc,
		enc:        opts.Charset,
		checkLogin: !opts.SkipLoginCheck,
	}
}

// RootURL is the portal landing page, which serves the login form.
func (p *Portal) RootURL() string {
	return p.baseURL
}

// LoginURL is the target of the login postback.
func (p *Portal) LoginURL() string {
	return p.baseURL + LoginPath
}

// ScheduleURL is the weekly schedule page.
func (p *Portal) ScheduleURL() string {
	return p.baseURL + SchedulePath
}

func (p *Portal) parse(res *session.Response) (*goquery.Document, error) {
	doc, err := webforms.Parse(res.Body, p.enc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", res.URL, err)
	}
	return doc, nil
}
