package entities

// Role is one signup slot category within a template.
type Role struct {
	Name  string
	Emoji string
	Limit int
}

// RoleTemplate is a named, immutable schema of roles. Roles keep the order
// declared in the definition file; rendering and buttons follow it.
type RoleTemplate struct {
	Name  string
	Roles []Role
}

// Role returns the role with the given name.
func (t *RoleTemplate) Role(name string) (Role, bool) {
	for _, r := range t.Roles {
		if r.Name == name {
			return r, true
		}
	}
	return Role{}, false
}

// RoleScheme is the tagged variant describing how an event accepts signups:
// templated (fixed roles with capacities) or untyped (single generic role,
// uncapped). An event whose template vanished from the catalog degrades to
// the untyped scheme.
type RoleScheme struct {
	template *RoleTemplate
}

func TemplatedScheme(t *RoleTemplate) RoleScheme {
	return RoleScheme{template: t}
}

func UntypedScheme() RoleScheme {
	return RoleScheme{}
}

func (s RoleScheme) Templated() bool {
	return s.template != nil
}

// Roles returns the template's roles in declared order, or nil for untyped.
func (s RoleScheme) Roles() []Role {
	if s.template == nil {
		return nil
	}
	return s.template.Roles
}

// Role resolves a role name against the scheme; always false for untyped.
func (s RoleScheme) Role(name string) (Role, bool) {
	if s.template == nil {
		return Role{}, false
	}
	return s.template.Role(name)
}
