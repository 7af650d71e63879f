package session

import (
	"math/rand"
	"net/url"
)

// UserAgentProvider supplies the User-Agent header for each request.
type UserAgentProvider interface {
	UserAgent() string
}

// RandomUserAgents picks one of its entries uniformly at random on every call.
type RandomUserAgents []string

// UserAgent implements UserAgentProvider.
func (r RandomUserAgents) UserAgent() string {
	if len(r) == 0 {
		return ""
	}
	return r[rand.Intn(len(r))]
}

// StaticUserAgent always returns the same value.
type StaticUserAgent string

// UserAgent implements UserAgentProvider.
func (s StaticUserAgent) UserAgent() string {
	return string(s)
}

// DefaultUserAgents is the desktop Chrome pool requests are disguised with.
var DefaultUserAgents = RandomUserAgents{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/55.0.2883.87 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/55.0.2883.87 Safari/537.36",
	"Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/55.0.2883.87 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_12_2) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/55.0.2883.95 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_12_2) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/55.0.2883.95 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_11_5) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/56.0.2924.87 Safari/537.36",
}

// URLRewriter maps the URL a caller asked for to the URL actually requested.
type URLRewriter interface {
	Rewrite(target string) string
}

// URLRewriterFunc adapts a function to URLRewriter.
type URLRewriterFunc func(target string) string

// Rewrite implements URLRewriter.
func (f URLRewriterFunc) Rewrite(target string) string {
	return f(target)
}

// ProxyRewriter sends requests through a fetch proxy of the form
// "https://proxy.example/?q=" by appending the escaped target URL.
type ProxyRewriter string

// Rewrite implements URLRewriter.
func (p ProxyRewriter) Rewrite(target string) string {
	return string(p) + url.QueryEscape(target)
}

type identity struct{}

func (identity) Rewrite(target string) string {
	return target
}
