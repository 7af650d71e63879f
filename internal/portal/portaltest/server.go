// Package portaltest provides an in-memory stand-in for the student portal,
// for tests that drive the full login and schedule flow over HTTP.
package portaltest

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"golang.org/x/text/encoding/charmap"
)

// BasePath is where the portal is mounted on the test server.
const BasePath = "/vern-student/"

const (
	authCookie     = ".ASPXAUTH"
	generatorValue = "B7A1D1C4"
)

// Row is one class row rendered on a week page.
type Row struct {
	Date      string
	Time      string
	Location  string
	Professor string
	Name      string
	Type      string
	Info      string
}

// Post records one schedule postback the server received.
type Post struct {
	Label              string
	EventTarget        string
	ViewState          string
	EventValidation    string
	ViewStateGenerator string
}

// Server is a fake portal. Tokens are issued sequentially (vs-1, ev-1, ...)
// and schedule postbacks must carry the most recently issued __VIEWSTATE.
type Server struct {
	*httptest.Server

	Username string
	Password string

	mu        sync.Mutex
	issued    int
	lastState string
	weeks     map[string]string
	posts     []Post
	logins    int
}

// NewServer starts a portal accepting the given credentials.
func NewServer(username, password string) *Server {
	s := &Server{
		Username: username,
		Password: password,
		weeks:    make(map[string]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(BasePath, s.handleRoot)
	mux.HandleFunc(BasePath+"Login.aspx", s.handleLogin)
	mux.HandleFunc(BasePath+"default.aspx", s.requireAuth(s.handleDefault))
	mux.HandleFunc(BasePath+"Raspored.aspx", s.requireAuth(s.handleSchedule))

	s.Server = httptest.NewServer(mux)
	return s
}

// BaseURL is the portal root on the test server.
func (s *Server) BaseURL() string {
	return s.URL + BasePath
}

// AddWeek sets the rows shown for the week picker label, e.g.
// "ponedjeljak, 03. 06. 2024.".
func (s *Server) AddWeek(label string, rows ...Row) {
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(RowHTML(r))
	}
	s.AddRawWeek(label, b.String())
}

// AddRawWeek sets the inner HTML of the nested schedule table for label.
func (s *Server) AddRawWeek(label, rowsHTML string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weeks[label] = rowsHTML
}

// Posts returns the schedule postbacks received so far.
func (s *Server) Posts() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Post(nil), s.posts...)
}

// Logins returns how many login postbacks were received.
func (s *Server) Logins() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logins
}

// RowHTML renders a class row the way the portal lays it out.
func RowHTML(r Row) string {
	e := html.EscapeString
	return fmt.Sprintf("<tr><td>%s<br>%s<br>%s</td><td>%s<br>\n<b>%s</b>\n<br><span>%s</span><i>%s</i></td></tr>",
		e(r.Date), e(r.Time), e(r.Location), e(r.Professor), e(r.Name), e(r.Type), e(r.Info))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != BasePath {
		http.NotFound(w, r)
		return
	}
	s.writePage(w, http.StatusOK, "Prijava", loginFormHTML(""))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writePage(w, http.StatusOK, "Prijava", loginFormHTML(""))
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.logins++
	s.mu.Unlock()

	if r.PostForm.Get("login") != s.Username || r.PostForm.Get("password") != s.Password ||
		r.PostForm.Get("butSubmit") == "" {
		s.writePage(w, http.StatusOK, "Prijava", loginFormHTML("Neispravno korisničko ime ili lozinka."))
		return
	}

	http.SetCookie(w, &http.Cookie{Name: authCookie, Value: "ok", Path: BasePath})
	http.Redirect(w, r, BasePath+"default.aspx", http.StatusFound)
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, http.StatusOK, "Studomat", "<p>Dobrodošli</p>")
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writePage(w, http.StatusOK, "Raspored", scheduleHTML("", ""))
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post := Post{
		Label:              r.PostForm.Get("puiDatum"),
		EventTarget:        r.PostForm.Get("__EVENTTARGET"),
		ViewState:          r.PostForm.Get("__VIEWSTATE"),
		EventValidation:    r.PostForm.Get("__EVENTVALIDATION"),
		ViewStateGenerator: r.PostForm.Get("__VIEWSTATEGENERATOR"),
	}

	s.mu.Lock()
	s.posts = append(s.posts, post)
	stale := post.ViewState != s.lastState
	rows := s.weeks[post.Label]
	s.mu.Unlock()

	if stale {
		http.Error(w, "Invalid viewstate.", http.StatusInternalServerError)
		return
	}

	s.writePage(w, http.StatusOK, "Raspored", scheduleHTML(post.Label, rows))
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(authCookie); err != nil || c.Value == "" {
			http.Redirect(w, r, BasePath+"Login.aspx?ReturnUrl=%2fvern-student%2fdefault.aspx", http.StatusFound)
			return
		}
		next(w, r)
	}
}

// writePage renders body inside a form carrying fresh postback state and
// sends it encoded as windows-1250.
func (s *Server) writePage(w http.ResponseWriter, status int, title, body string) {
	s.mu.Lock()
	s.issued++
	n := s.issued
	s.lastState = fmt.Sprintf("vs-%d", n)
	s.mu.Unlock()

	page := fmt.Sprintf(`<!DOCTYPE html>
<html><head><meta http-equiv="Content-Type" content="text/html; charset=windows-1250"><title>%s</title></head>
<body><form method="post" id="form1">
<input type="hidden" name="__VIEWSTATE" id="__VIEWSTATE" value="vs-%d" />
<input type="hidden" name="__VIEWSTATEGENERATOR" id="__VIEWSTATEGENERATOR" value="%s" />
<input type="hidden" name="__EVENTVALIDATION" id="__EVENTVALIDATION" value="ev-%d" />
%s
</form></body></html>`, title, n, generatorValue, n, body)

	encoded, err := charmap.Windows1250.NewEncoder().String(page)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=windows-1250")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(encoded))
}

func loginFormHTML(errorText string) string {
	var b strings.Builder
	if errorText != "" {
		fmt.Fprintf(&b, `<span class="error">%s</span>`, html.EscapeString(errorText))
	}
	b.WriteString(`<input name="login" type="text" id="login" />
<input name="password" type="password" id="password" />
<input type="image" name="butSubmit" id="butSubmit" src="img/prijava.gif" alt="Prijava" />`)
	return b.String()
}

func scheduleHTML(label, rows string) string {
	return fmt.Sprintf(`<select name="puiDatum" id="puiDatum" onchange="__doPostBack('puiDatum','')"><option selected="selected">%s</option></select>
<table class="raspored"><tr><td><table>%s</table></td></tr></table>`, html.EscapeString(label), rows)
}
