package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout_BaseWidgets(t *testing.T) {
	layout := DefaultLayout(NewRoleSet(RoleJobOrderApprover, RoleManhoursStaff), sequentialIDs())
	require.Len(t, layout, 4)

	want := []string{KindQuickNotes, KindCalendar, KindJORequestorChart, KindManhoursChart}
	for i, w := range layout {
		assert.Equal(t, want[i], w.Type)
		assert.Equal(t, Rect{X: i, Y: 0, W: 1, H: 1}, w.Rect())
	}
	noOverlap(t, layout)
}

func TestDefaultLayout_DCFRoles(t *testing.T) {
	t.Run("requestor", func(t *testing.T) {
		layout := DefaultLayout(NewRoleSet(RoleDCFRequestor), sequentialIDs())
		require.Len(t, layout, 5)
		assert.Equal(t, Widget{ID: "widget-5", Type: KindDCFRequestorChart, X: 0, Y: 1, W: 2, H: 1}, layout[4])
	})
	t.Run("approver", func(t *testing.T) {
		layout := DefaultLayout(NewRoleSet(RoleDCFApprover), sequentialIDs())
		require.Len(t, layout, 5)
		assert.Equal(t, Widget{ID: "widget-5", Type: KindDCFApproverChart, X: 2, Y: 1, W: 2, H: 1}, layout[4])
	})
	t.Run("both", func(t *testing.T) {
		layout := DefaultLayout(NewRoleSet(RoleDCFRequestor, RoleDCFApprover), sequentialIDs())
		require.Len(t, layout, 6)
		noOverlap(t, layout)
	})
}

func TestDefaultLayout_UniqueGeneratedIDs(t *testing.T) {
	layout := DefaultLayout(NewRoleSet(RoleDCFRequestor, RoleDCFApprover), nil)
	seen := map[string]bool{}
	for _, w := range layout {
		assert.Regexp(t, `^widget-[0-9a-f]{32}$`, w.ID)
		assert.False(t, seen[w.ID])
		seen[w.ID] = true
	}
}

func TestResolveRoles(t *testing.T) {
	roles := ResolveRoles(Kinds(), []string{RoleDCFApprover, "superuser", "", RoleManhoursStaff})
	assert.Equal(t, []string{RoleDCFApprover, RoleManhoursStaff}, roles.List())

	// kinds that do not mention a role cannot resolve it
	roles = ResolveRoles([]Kind{{Tag: KindQuickNotes}}, []string{RoleDCFApprover})
	assert.Empty(t, roles.List())
}

func TestOfferedKinds(t *testing.T) {
	tags := func(ks []Kind) []string {
		out := make([]string, 0, len(ks))
		for _, k := range ks {
			out = append(out, k.Tag)
		}
		return out
	}
	assert.Equal(t, []string{KindQuickNotes, KindCalendar}, tags(OfferedKinds(NewRoleSet())))

	got := tags(OfferedKinds(NewRoleSet(RoleDCFRequestor)))
	assert.Contains(t, got, KindDCFRequestorChart)
	assert.NotContains(t, got, KindDCFApproverChart)
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(ResizeDebounce)
	fired := make(chan struct{}, 1)
	d.Trigger(func() { fired <- struct{}{} })
	d.Stop()
	select {
	case <-fired:
		t.Fatal("stopped debouncer fired")
	default:
	}
}
