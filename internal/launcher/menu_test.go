package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chess10kp/cleanlauncher/internal/apps"
	"github.com/chess10kp/cleanlauncher/internal/prefs"
)

func TestMenuActions(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]MenuAction{ActionRemoveFavorite, ActionRename, ActionHide, ActionMarkBad, ActionSettings},
		MenuActions(ViewHome, apps.StateFavorite))
	assert.Equal(t,
		[]MenuAction{ActionAddFavorite, ActionRename, ActionHide, ActionUnmarkBad, ActionSettings},
		MenuActions(ViewDrawer, apps.StateBad))
	assert.Equal(t,
		[]MenuAction{ActionAddFavorite, ActionUnhide, ActionMarkBad, ActionRename, ActionAppInfo},
		MenuActions(ViewSettings, apps.StateHidden))
}

func TestApplyWritesAndToasts(t *testing.T) {
	t.Parallel()

	p, err := prefs.Open(prefs.NewMemoryBackend())
	require.NoError(t, err)
	rec := record("org.mozilla.firefox", "Firefox", apps.StateNeither)

	toast, err := Apply(p, ActionAddFavorite, rec)
	require.NoError(t, err)
	assert.Equal(t, "Firefox added to favorites", toast)
	assert.True(t, p.IsFavorite(rec.ID))

	toast, err = Apply(p, ActionHide, rec)
	require.NoError(t, err)
	assert.Equal(t, "Firefox hidden", toast)
	assert.False(t, p.IsFavorite(rec.ID))
	assert.True(t, p.IsHidden(rec.ID))

	toast, err = Apply(p, ActionUnhide, rec)
	require.NoError(t, err)
	assert.Equal(t, "Firefox is now visible", toast)

	_, err = Apply(p, ActionMarkBad, rec)
	require.NoError(t, err)
	assert.True(t, p.IsBad(rec.ID))

	_, err = Apply(p, ActionRename, rec)
	assert.ErrorIs(t, err, ErrInteractive)
}

func TestRename(t *testing.T) {
	t.Parallel()

	p, err := prefs.Open(prefs.NewMemoryBackend())
	require.NoError(t, err)
	rec := record("org.gnome.Maps", "Maps", apps.StateNeither)

	_, err = Rename(p, rec, "   ")
	assert.ErrorIs(t, err, prefs.ErrBlankName)

	toast, err := Rename(p, rec, " atlas ")
	require.NoError(t, err)
	assert.Equal(t, "Maps renamed", toast)

	name, ok := p.CustomName(rec.ID)
	require.True(t, ok)
	assert.Equal(t, "atlas", name)
}
