// Package auth implements the Auth Form Driver (spec.md §4.3): the
// INIT -> LOGIN -> CHALLENGE -> DONE state machine that turns a bare
// SVPNCOOKIE-less session into an authenticated one, collaborating
// with the out-of-scope UI and Tokens ports rather than rendering a
// prompt itself.
package auth

import (
	"context"
	"net/url"
	"strings"

	"fortivpn/application"
	"fortivpn/domain/fortinet"
)

// state names the driver's position in the INIT/LOGIN/CHALLENGE/DONE
// machine described in spec.md §4.3.
type state int

const (
	stateInit state = iota
	stateLogin
	stateChallenge
	stateDone
)

var challengeActionKeys = map[string]bool{
	"reqid":  true,
	"polid":  true,
	"grp":    true,
	"portal": true,
	"peer":   true,
	"magic":  true,
}

// Driver runs the authentication handshake to completion, returning
// the SVPNCOOKIE value on success.
type Driver struct {
	http   application.HTTPClient
	ui     application.UI
	tokens application.Tokens

	realm string
	form  *fortinet.Form
	state state
}

func NewDriver(http application.HTTPClient, ui application.UI, tokens application.Tokens) *Driver {
	return &Driver{http: http, ui: ui, tokens: tokens, state: stateInit}
}

// Run drives the state machine to DONE or a terminal error.
func (d *Driver) Run(ctx context.Context) (string, error) {
	for {
		switch d.state {
		case stateInit:
			if err := d.runInit(ctx); err != nil {
				return "", err
			}
			d.state = stateLogin
			d.form = fortinet.NewLoginForm()
		case stateLogin:
			done, err := d.runLoginRound(ctx)
			if err != nil {
				return "", err
			}
			if done {
				return d.cookie()
			}
		case stateChallenge:
			done, err := d.runChallengeRound(ctx)
			if err != nil {
				return "", err
			}
			if done {
				return d.cookie()
			}
		case stateDone:
			return d.cookie()
		}
	}
}

func (d *Driver) cookie() (string, error) {
	v, ok := d.http.Cookie("SVPNCOOKIE")
	if !ok {
		return "", fortinet.NewProtocolError("reached DONE without an SVPNCOOKIE")
	}
	return v, nil
}

// runInit issues GET / and recovers the realm= query parameter from
// wherever redirects ultimately landed.
func (d *Driver) runInit(ctx context.Context) error {
	if _, _, err := d.http.Request(ctx, "GET", "/", "", nil); err != nil {
		return fortinet.NewTransportError(err)
	}
	final := d.http.FinalURL()
	if u, err := url.Parse(final); err == nil {
		d.realm = u.Query().Get("realm")
	}
	return nil
}

// runLoginRound presents the static two-field form, submits it, and
// reports true once the driver reached DONE; a non-nil error is a hard
// failure. false with a nil error means "loop again" in d.state: LOGIN,
// or CHALLENGE when the response asked for one.
func (d *Driver) runLoginRound(ctx context.Context) (bool, error) {
	result, err := d.ui.ProcessAuthForm(d.form)
	if err != nil {
		return false, err
	}
	switch result {
	case application.FormCancelled:
		return false, fortinet.ErrCancelled
	case application.FormErr:
		return false, fortinet.NewProtocolError("auth form collaborator returned an error result")
	}

	body := d.encodeFields(d.form) + "&realm=" + url.QueryEscape(d.realm) + "&ajax=1&just_logged_in=1"
	status, respBody, err := d.http.Request(ctx, "POST", "remote/logincheck", "application/x-www-form-urlencoded", []byte(body))
	if err != nil {
		return false, fortinet.NewTransportError(err)
	}

	if _, ok := d.http.Cookie("SVPNCOOKIE"); ok {
		d.state = stateDone
		return true, nil
	}

	resp := string(respBody)
	if status == 200 && strings.HasPrefix(resp, "ret=") && strings.Contains(resp, ",tokeninfo=") {
		d.enterChallenge(resp)
		return false, nil
	}

	// Otherwise stay in LOGIN: the user may retry.
	return false, nil
}

func (d *Driver) enterChallenge(resp string) {
	haveTokenGen := false
	if d.tokens != nil {
		if code := d.form.Field("credential"); code != nil {
			haveTokenGen = d.tokens.CanGenerate(code)
		}
	}
	d.form.ToChallenge(haveTokenGen)
	d.form.Message = extractValue(resp, ',', "chal_msg")

	d.form.Action = nil
	for _, pair := range strings.Split(filterOpts(resp, ',', challengeActionKeys, true), "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		d.form.Action = append(d.form.Action, fortinet.ActionPair{Key: key, Value: value})
	}

	d.state = stateChallenge
}

// runChallengeRound submits the rebuilt challenge form, optionally
// auto-filling the code from the Tokens collaborator first.
func (d *Driver) runChallengeRound(ctx context.Context) (bool, error) {
	if code := d.form.Field("code"); code != nil && code.Type == fortinet.FieldToken && d.tokens != nil {
		gen, err := d.tokens.Generate(d.form)
		if err != nil {
			return false, fortinet.NewProtocolError("token generation failed: " + err.Error())
		}
		code.Value = gen
	}

	result, err := d.ui.ProcessAuthForm(d.form)
	if err != nil {
		return false, err
	}
	switch result {
	case application.FormCancelled:
		return false, fortinet.ErrCancelled
	case application.FormErr:
		return false, fortinet.NewProtocolError("auth form collaborator returned an error result")
	}

	body := d.encodeFields(d.form) + "&realm=" + url.QueryEscape(d.realm) + "&code2=&" + d.encodeAction()
	status, respBody, err := d.http.Request(ctx, "POST", "remote/logincheck", "application/x-www-form-urlencoded", []byte(body))
	if err != nil {
		return false, fortinet.NewTransportError(err)
	}

	if _, ok := d.http.Cookie("SVPNCOOKIE"); ok {
		d.state = stateDone
		return true, nil
	}

	resp := string(respBody)
	if status == 200 && strings.HasPrefix(resp, "ret=") && strings.Contains(resp, ",tokeninfo=") {
		d.enterChallenge(resp)
	}
	// Still not authenticated: re-enter CHALLENGE with the same form.
	return false, nil
}

// encodeFields form-encodes every field's current value, including
// hidden ones: a hidden field is still submitted, only its display in
// the UI is suppressed (spec.md §4.3's CHALLENGE rebuild hides
// username but the credential-turned-code still rides alongside it).
func (d *Driver) encodeFields(form *fortinet.Form) string {
	var parts []string
	for _, f := range form.Fields {
		parts = append(parts, url.QueryEscape(f.Name)+"="+url.QueryEscape(f.Value))
	}
	return strings.Join(parts, "&")
}

func (d *Driver) encodeAction() string {
	var parts []string
	for _, a := range d.form.Action {
		parts = append(parts, a.Key+"="+a.Value)
	}
	return strings.Join(parts, "&")
}
