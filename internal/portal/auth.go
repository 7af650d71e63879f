package portal

import (
	"context"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/iprlic/vern-raspored/internal/logger"
	"github.com/iprlic/vern-raspored/internal/webforms"
)

// ErrLoginFailed is returned when the portal answers the login postback with
// the login form again.
var ErrLoginFailed = errors.New("login failed: check username and password")

// Login form fields. The coordinates are where a user would click the image
// submit button.
const (
	fieldLogin       = "login"
	fieldPassword    = "password"
	fieldSubmit      = "butSubmit"
	fieldSubmitX     = "butSubmit.x"
	fieldSubmitY     = "butSubmit.y"
	submitLabel      = "Prijava"
	submitX, submitY = "37", "22"
)

// Login signs in with the given credentials. The authenticated cookies stay in
// the client; the returned state is the one extracted from the login response.
func (p *Portal) Login(ctx context.Context, username, password string) (webforms.State, error) {
	res, err := p.client.Get(ctx, p.RootURL())
	if err != nil {
		return webforms.State{}, fmt.Errorf("fetching login page: %w", err)
	}
	doc, err := p.parse(res)
	if err != nil {
		return webforms.State{}, err
	}

	form := LoginForm(webforms.ExtractState(doc), username, password)

	res, err = p.client.Post(ctx, p.LoginURL(), form)
	if err != nil {
		return webforms.State{}, fmt.Errorf("posting login form: %w", err)
	}
	doc, err = p.parse(res)
	if err != nil {
		return webforms.State{}, err
	}

	if p.checkLogin && loginFormPresent(doc) {
		return webforms.State{}, ErrLoginFailed
	}

	logger.Info("Logged in", logger.Fields{"username": username, "landing": res.URL})
	return webforms.ExtractState(doc), nil
}

// LoginForm builds the login postback for state.
func LoginForm(state webforms.State, username, password string) map[string]string {
	return webforms.NewForm(state).
		Set(fieldLogin, username).
		Set(fieldPassword, password).
		Set(fieldSubmitX, submitX).
		Set(fieldSubmitY, submitY).
		Set(fieldSubmit, submitLabel).
		Values()
}

// loginFormPresent reports whether doc still shows the sign-in form.
func loginFormPresent(doc *goquery.Document) bool {
	return doc.Find(`input[name="`+fieldPassword+`"]`).Length() > 0 ||
		doc.Find(`input[name="`+fieldSubmit+`"]`).Length() > 0
}
