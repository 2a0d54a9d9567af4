package grid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AliasesShareRenderer(t *testing.T) {
	reg := NewRegistry()
	reg.Register("dcf-requestor", RendererFunc(func(context.Context, Widget) (string, error) {
		return "requests", nil
	}))

	for _, tag := range []string{KindDCFRequestorChart, "dcfrequestor", "DCFRequestorChart", " dcf-requestor "} {
		rd, ok := reg.Lookup(tag)
		require.Truef(t, ok, "tag %q", tag)
		body, err := rd.Render(context.Background(), Widget{Type: tag})
		require.NoError(t, err)
		assert.Equal(t, "requests", body)
	}
}

func TestRegistry_UnknownFallback(t *testing.T) {
	reg := NewRegistry()
	rd, ok := reg.Lookup("weather")
	assert.False(t, ok)
	require.NotNil(t, rd)
	body, err := rd.Render(context.Background(), Widget{Type: "weather"})
	require.NoError(t, err)
	assert.Equal(t, UnknownTypeMessage, body)
}

func TestLookupKind(t *testing.T) {
	k, ok := LookupKind("JO-Requestor-Chart")
	require.True(t, ok)
	assert.Equal(t, KindJORequestorChart, k.Tag)
	assert.Equal(t, "/joborder/chart-data/6month/", k.DataSource)

	_, ok = LookupKind("")
	assert.False(t, ok)
	assert.Equal(t, "weather", Canonical("weather"))
	assert.Equal(t, KindDCFApproverChart, Canonical("dcf-approver"))
}

func TestKinds_ReturnsCopy(t *testing.T) {
	ks := Kinds()
	ks[0].Title = "changed"
	assert.Equal(t, "Quick Notes", Kinds()[0].Title)
}
