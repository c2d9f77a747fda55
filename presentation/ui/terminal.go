// Package ui implements the Auth Form Driver's UI collaborator
// (SPEC_FULL.md, domain-stack section) as a plain terminal prompt, matching the teacher's
// own main.go pattern of reading stdin through bufio rather than
// fabricating a TUI layer this repository never retrieved.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"fortivpn/application"
	"fortivpn/domain/fortinet"
)

// Terminal prompts the user on stdin/stdout for each field in a Form.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

func (t *Terminal) ProcessAuthForm(form *fortinet.Form) (application.FormResult, error) {
	if form.Message != "" {
		fmt.Fprintln(t.out, form.Message)
	}

	for i := range form.Fields {
		f := &form.Fields[i]
		if f.Type == fortinet.FieldHidden {
			continue
		}
		fmt.Fprint(t.out, f.Label)

		value, err := t.readLine()
		if err != nil {
			return application.FormErr, err
		}
		if strings.EqualFold(value, "cancel") {
			return application.FormCancelled, nil
		}
		f.Value = value
	}

	return application.FormOk, nil
}

// readLine reads one line of visible input. Password fields are not
// given local-echo suppression here: that would need a raw-mode
// terminal library this module does not depend on (SPEC_FULL.md's
// dropped-dependency note on the TUI layer applies equally here).
func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
