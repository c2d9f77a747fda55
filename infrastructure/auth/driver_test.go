package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fortivpn/application"
	"fortivpn/domain/fortinet"
)

type fakeHTTP struct {
	final  string
	cookie map[string]string
	calls  int
	steps  []func(method, path, body string) (int, []byte)
}

func (f *fakeHTTP) Request(_ context.Context, method, path, _ string, body []byte) (int, []byte, error) {
	i := f.calls
	f.calls++
	if i >= len(f.steps) {
		return 0, nil, errors.New("fakeHTTP: unexpected call")
	}
	status, respBody := f.steps[i](method, path, string(body))
	return status, respBody, nil
}

func (f *fakeHTTP) Cookie(name string) (string, bool) {
	v, ok := f.cookie[name]
	return v, ok
}

func (f *fakeHTTP) FinalURL() string { return f.final }

type fakeUI struct {
	calls int
	acts  []func(form *fortinet.Form) (application.FormResult, error)
}

func (u *fakeUI) ProcessAuthForm(form *fortinet.Form) (application.FormResult, error) {
	i := u.calls
	u.calls++
	return u.acts[i](form)
}

type fakeTokens struct {
	canGen bool
	code   string
	genErr error
}

func (t *fakeTokens) CanGenerate(*fortinet.Field) bool { return t.canGen }
func (t *fakeTokens) Generate(*fortinet.Form) (string, error) {
	return t.code, t.genErr
}

func TestDriverRun_DirectLoginSuccess(t *testing.T) {
	var loginBody string
	http := &fakeHTTP{
		final:  "/?realm=corp",
		cookie: map[string]string{},
	}
	http.steps = []func(string, string, string) (int, []byte){
		func(method, path, body string) (int, []byte) { return 200, nil },
		func(method, path, body string) (int, []byte) {
			loginBody = body
			http.cookie["SVPNCOOKIE"] = "abc123"
			return 200, nil
		},
	}
	ui := &fakeUI{acts: []func(*fortinet.Form) (application.FormResult, error){
		func(form *fortinet.Form) (application.FormResult, error) {
			form.Field("username").Value = "alice"
			form.Field("credential").Value = "hunter2"
			return application.FormOk, nil
		},
	}}

	d := NewDriver(http, ui, nil)
	cookie, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cookie != "abc123" {
		t.Fatalf("got cookie %q", cookie)
	}
	if !strings.Contains(loginBody, "realm=corp") {
		t.Fatalf("expected realm in submitted body, got %q", loginBody)
	}
}

func TestDriverRun_ChallengeFlow(t *testing.T) {
	var secondBody string
	http := &fakeHTTP{
		final:  "/?realm=corp",
		cookie: map[string]string{},
	}
	http.steps = []func(string, string, string) (int, []byte){
		func(method, path, body string) (int, []byte) { return 200, nil },
		func(method, path, body string) (int, []byte) {
			return 200, []byte("ret=1,tokeninfo=x,chal_msg=Enter the code,reqid=9,polid=3,grp=g1,portal=p,peer=pe,magic=mg")
		},
		func(method, path, body string) (int, []byte) {
			secondBody = body
			http.cookie["SVPNCOOKIE"] = "tok-cookie"
			return 200, nil
		},
	}
	ui := &fakeUI{acts: []func(*fortinet.Form) (application.FormResult, error){
		func(form *fortinet.Form) (application.FormResult, error) {
			form.Field("username").Value = "alice"
			form.Field("credential").Value = "hunter2"
			return application.FormOk, nil
		},
		func(form *fortinet.Form) (application.FormResult, error) {
			if form.AuthID != "_challenge" {
				t.Fatalf("expected auth_id _challenge, got %q", form.AuthID)
			}
			if form.Message != "Enter the code" {
				t.Fatalf("expected chal_msg extracted, got %q", form.Message)
			}
			form.Field("code").Value = "654321"
			return application.FormOk, nil
		},
	}}

	d := NewDriver(http, ui, nil)
	cookie, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cookie != "tok-cookie" {
		t.Fatalf("got cookie %q", cookie)
	}
	if !strings.Contains(secondBody, "code=654321") {
		t.Fatalf("expected code in submitted body, got %q", secondBody)
	}
	if !strings.Contains(secondBody, "reqid=9") {
		t.Fatalf("expected action blob carried over, got %q", secondBody)
	}
	if !strings.Contains(secondBody, "code2=&reqid=9") {
		t.Fatalf("expected code2 and action blob separated by &, got %q", secondBody)
	}
}

func TestDriverRun_CancelledAtLogin(t *testing.T) {
	http := &fakeHTTP{final: "/", cookie: map[string]string{}, steps: []func(string, string, string) (int, []byte){
		func(string, string, string) (int, []byte) { return 200, nil },
	}}
	ui := &fakeUI{acts: []func(*fortinet.Form) (application.FormResult, error){
		func(*fortinet.Form) (application.FormResult, error) {
			return application.FormCancelled, nil
		},
	}}

	d := NewDriver(http, ui, nil)
	if _, err := d.Run(context.Background()); !errors.Is(err, fortinet.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestDriverRun_TokenAutoFill(t *testing.T) {
	var secondBody string
	http := &fakeHTTP{final: "/?realm=corp", cookie: map[string]string{}}
	http.steps = []func(string, string, string) (int, []byte){
		func(string, string, string) (int, []byte) { return 200, nil },
		func(string, string, string) (int, []byte) {
			return 200, []byte("ret=1,tokeninfo=x,chal_msg=code,reqid=9,polid=3,grp=g,portal=p,peer=pe,magic=mg")
		},
		func(_, _, body string) (int, []byte) {
			secondBody = body
			http.cookie["SVPNCOOKIE"] = "auto"
			return 200, nil
		},
	}
	ui := &fakeUI{acts: []func(*fortinet.Form) (application.FormResult, error){
		func(form *fortinet.Form) (application.FormResult, error) {
			form.Field("username").Value = "alice"
			form.Field("credential").Value = "hunter2"
			return application.FormOk, nil
		},
		func(form *fortinet.Form) (application.FormResult, error) {
			if form.Field("code").Type != fortinet.FieldToken {
				t.Fatalf("expected code field marked Token when a generator exists")
			}
			return application.FormOk, nil
		},
	}}
	tokens := &fakeTokens{canGen: true, code: "999999"}

	d := NewDriver(http, ui, tokens)
	if _, err := d.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(secondBody, "code=999999") {
		t.Fatalf("expected auto-generated code in body, got %q", secondBody)
	}
}
