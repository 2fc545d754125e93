package key

// Role classifies the widget an event is addressed to.
type Role uint8

const (
	RoleNone Role = iota
	RoleDocument
	RoleButton
	RoleList
	RoleTextInput
	RoleTextArea
	RoleSelect
	RoleSearchBox
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleDocument:
		return "document"
	case RoleButton:
		return "button"
	case RoleList:
		return "list"
	case RoleTextInput:
		return "textinput"
	case RoleTextArea:
		return "textarea"
	case RoleSelect:
		return "select"
	case RoleSearchBox:
		return "searchbox"
	default:
		return "none"
	}
}

// Target is the nominal recipient of a key event.
type Target interface {
	Role() Role
}

// contentEditable is implemented by targets whose editability does not
// follow from their role.
type contentEditable interface {
	ContentEditable() bool
}

// IsEditable reports whether typing into target would produce text. Content
// editable targets and text-input-like roles count; nil does not.
func IsEditable(target Target) bool {
	if target == nil {
		return false
	}
	if ce, ok := target.(contentEditable); ok && ce.ContentEditable() {
		return true
	}
	switch target.Role() {
	case RoleTextInput, RoleTextArea, RoleSelect, RoleSearchBox:
		return true
	}
	return false
}

// Widget is a plain Target for backends and tests.
type Widget struct {
	Name     string
	Kind     Role
	Editable bool
}

// Role implements Target.
func (w *Widget) Role() Role {
	if w == nil {
		return RoleNone
	}
	return w.Kind
}

// ContentEditable reports the explicit editable flag.
func (w *Widget) ContentEditable() bool {
	return w != nil && w.Editable
}
