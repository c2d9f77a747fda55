package fortinet

// FieldType tags how a Form field should be rendered/collected.
type FieldType int

const (
	FieldText FieldType = iota
	FieldPassword
	FieldHidden
	FieldToken
)

// Field is one labeled entry in an auth Form.
type Field struct {
	Name  string
	Label string
	Value string
	Type  FieldType
}

// ActionPair is one carried-over key/value from the challenge response,
// restricted to the allow-listed keys in spec.md §4.3. No semantic
// interpretation is attempted — it is an opaque pass-through blob.
type ActionPair struct {
	Key   string
	Value string
}

// Form is the mutable state the Auth Form Driver presents to the UI
// collaborator and resubmits across LOGIN/CHALLENGE rounds.
type Form struct {
	Fields  []Field
	AuthID  string
	Message string
	Action  []ActionPair
}

// Field returns a pointer to the named field, or nil if absent.
func (f *Form) Field(name string) *Field {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}

// NewLoginForm builds the static two-field form used for INIT->LOGIN.
func NewLoginForm() *Form {
	return &Form{
		Fields: []Field{
			{Name: "username", Label: "Username: ", Type: FieldText},
			{Name: "credential", Label: "Password: ", Type: FieldPassword},
		},
	}
}

// ToChallenge reconfigures the form in place for the CHALLENGE round:
// hides username, renames credential to code, and marks it Token when
// a token generator is available (spec.md §4.3).
func (f *Form) ToChallenge(haveTokenGen bool) {
	if u := f.Field("username"); u != nil {
		u.Type = FieldHidden
	}
	if c := f.Field("credential"); c != nil {
		c.Name = "code"
		c.Label = "Code: "
		c.Value = ""
		if haveTokenGen {
			c.Type = FieldToken
		} else {
			c.Type = FieldPassword
		}
	}
	f.AuthID = "_challenge"
}
