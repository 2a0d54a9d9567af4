package grid

import (
	"slices"
	"sort"
)

// RoleSet is the set of portal roles asserted for the current user.
type RoleSet map[string]struct{}

// NewRoleSet builds a set from role names, ignoring blanks.
func NewRoleSet(roles ...string) RoleSet {
	rs := make(RoleSet, len(roles))
	for _, r := range roles {
		if r != "" {
			rs[r] = struct{}{}
		}
	}
	return rs
}

// Has reports membership.
func (rs RoleSet) Has(role string) bool {
	_, ok := rs[role]
	return ok
}

// List returns the roles sorted by name.
func (rs RoleSet) List() []string {
	out := make([]string, 0, len(rs))
	for r := range rs {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// ResolveRoles keeps the asserted roles that at least one offered kind
// mentions. This only decides which widgets are offered or defaulted; it is
// not an access check.
func ResolveRoles(offered []Kind, asserted []string) RoleSet {
	mentioned := make(RoleSet)
	for _, k := range offered {
		for _, r := range k.Roles {
			mentioned[r] = struct{}{}
		}
	}
	out := make(RoleSet)
	for _, r := range asserted {
		if mentioned.Has(r) {
			out[r] = struct{}{}
		}
	}
	return out
}

// OfferedKinds filters the catalog to what roles may add.
func OfferedKinds(roles RoleSet) []Kind {
	return slices.DeleteFunc(Kinds(), func(k Kind) bool { return !k.OfferedTo(roles) })
}

// DefaultLayout synthesizes the starter dashboard: four base widgets across
// the first row, plus the DCF charts on the second row for users holding
// the matching role. newID is called once per widget.
func DefaultLayout(roles RoleSet, newID func() string) Layout {
	if newID == nil {
		newID = NewWidgetID
	}
	layout := Layout{
		{ID: newID(), Type: KindQuickNotes, X: 0, Y: 0, W: 1, H: 1},
		{ID: newID(), Type: KindCalendar, X: 1, Y: 0, W: 1, H: 1},
		{ID: newID(), Type: KindJORequestorChart, X: 2, Y: 0, W: 1, H: 1},
		{ID: newID(), Type: KindManhoursChart, X: 3, Y: 0, W: 1, H: 1},
	}
	if roles.Has(RoleDCFRequestor) {
		layout = append(layout, Widget{ID: newID(), Type: KindDCFRequestorChart, X: 0, Y: 1, W: 2, H: 1})
	}
	if roles.Has(RoleDCFApprover) {
		layout = append(layout, Widget{ID: newID(), Type: KindDCFApproverChart, X: 2, Y: 1, W: 2, H: 1})
	}
	return layout
}
