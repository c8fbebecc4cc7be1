package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tgienger/kadai/internal/models"
)

func useTheme(t *testing.T, name string) {
	t.Helper()
	prev := Current
	t.Cleanup(func() { Current = prev })
	Use(name)
}

func TestUse(t *testing.T) {
	useTheme(t, "slate")
	assert.Equal(t, Slate.Name, Current.Name)

	Use("no-such-theme")
	assert.Equal(t, Slate.Name, Current.Name, "unknown names keep the current theme")

	Use("tokyo-night")
	assert.Equal(t, TokyoNight.Name, Current.Name)
}

func TestStatusColor(t *testing.T) {
	useTheme(t, "tokyo-night")

	assert.Equal(t, TokyoNight.ForegroundDim, StatusColor(models.StatusNotStarted))
	assert.Equal(t, TokyoNight.Info, StatusColor(models.StatusInProgress))
	assert.Equal(t, TokyoNight.Warning, StatusColor(models.StatusReviewing))
	assert.Equal(t, TokyoNight.Success, StatusColor(models.StatusCompleted))
	assert.Equal(t, TokyoNight.ForegroundDim, StatusColor(models.Status("ARCHIVED")))
}

func TestStatusBadge(t *testing.T) {
	s := NewStyles()
	for _, status := range models.Statuses {
		assert.Contains(t, s.StatusBadge(status), status.Label())
	}
}

func TestContentWidth(t *testing.T) {
	assert.Equal(t, 60, ContentWidth(60))
	assert.Equal(t, MaxWidth, ContentWidth(200))
}
