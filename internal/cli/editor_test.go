package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/alexanderramin/mesoplan/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startEditor(t *testing.T, app *App, ref string) (*weekEditor, *teatest.Driver) {
	t.Helper()
	view, err := app.Mesocycles.Get(context.Background(), ref)
	require.NoError(t, err)
	m, err := newWeekEditor(context.Background(), app, view)
	require.NoError(t, err)
	d := teatest.New(t, m, teatest.WithSize(100, 30), teatest.WithCmdTimeout(2*time.Second))
	return m, d
}

func TestWeekEditor_StartsClean(t *testing.T) {
	app := testApp(t)
	seedMesocycle(t, app, "Base", "4")

	m, d := startEditor(t, app, "Base")
	assert.False(t, m.dirty)
	assert.Len(t, m.latest.WeeklyProgressions, 4)
	assert.NotContains(t, d.View(), "unsaved")
	assert.Contains(t, d.View(), "Mar 4 - Mar 28, 2026 · 4 weeks")

	d.PressKey('s')
	assert.Equal(t, "nothing to save", m.status)
}

func TestWeekEditor_AdjustAndSave(t *testing.T) {
	app := testApp(t)
	seedMesocycle(t, app, "Base", "4")
	m, d := startEditor(t, app, "Base")

	d.Press(tea.KeyDown)
	d.PressKey('+')
	assert.Equal(t, 105.0, m.latest.WeeklyProgressions[1].Intensity.Volume)
	assert.True(t, m.dirty)
	assert.Contains(t, d.View(), "● unsaved")

	// Stored progression is untouched until saved.
	assert.Equal(t, domain.BaselineVolume, weekOf(t, app, "Base", 2).Intensity.Volume)

	d.PressKey('s')
	require.NoError(t, m.err)
	assert.False(t, m.dirty)
	assert.Equal(t, "saved", m.status)
	assert.Equal(t, 105.0, weekOf(t, app, "Base", 2).Intensity.Volume)
}

func TestWeekEditor_FieldBounds(t *testing.T) {
	app := testApp(t)
	seedMesocycle(t, app, "Base", "4")
	m, d := startEditor(t, app, "Base")

	d.PressKeys("ll") // rir
	for i := 0; i <= domain.BaselineRIR; i++ {
		d.PressKey('-')
	}
	assert.Equal(t, 0, m.latest.WeeklyProgressions[0].Intensity.RIR)
	assert.Equal(t, "rir stays within 0-10", m.status)

	d.PressKey('h') // weight
	d.PressKey('+')
	assert.Equal(t, 102.5, m.latest.WeeklyProgressions[0].Intensity.Weight)
}

func TestWeekEditor_PresetCycle(t *testing.T) {
	app := testApp(t)
	seedMesocycle(t, app, "Base", "4")
	m, d := startEditor(t, app, "Base")

	d.PressKey('p')
	assert.Equal(t, "week 1: Easy Week", m.status)
	assert.Equal(t, 95.0, m.latest.WeeklyProgressions[0].Intensity.Weight)

	d.PressKeys("pp")
	assert.Equal(t, "week 1: Hard Week", m.status)
	assert.Equal(t, "Hard Week", m.latest.WeeklyProgressions[0].Label)

	// Moving resets the cycle to the first preset.
	d.Press(tea.KeyDown)
	d.PressKey('p')
	assert.Equal(t, "week 2: Easy Week", m.status)
}

func TestWeekEditor_AutoDeload(t *testing.T) {
	app := testApp(t)
	seedMesocycle(t, app, "Base", "8")
	m, d := startEditor(t, app, "Base")

	d.PressKey('a')
	assert.Equal(t, "deload every 4 weeks", m.status)
	assert.True(t, m.latest.WeeklyProgressions[3].IsDeload)
	assert.True(t, m.latest.WeeklyProgressions[7].IsDeload)
	assert.True(t, m.dirty)
}

func TestWeekEditor_QuitSavesWhenDirty(t *testing.T) {
	app := testApp(t)
	seedMesocycle(t, app, "Base", "4")
	_, d := startEditor(t, app, "Base")

	d.PressKeys("jd")
	assert.Contains(t, d.View(), "↓ deload")
	d.PressKey('q')

	assert.True(t, d.Quitting)
	w2 := weekOf(t, app, "Base", 2)
	assert.True(t, w2.IsDeload)
	assert.Equal(t, domain.DeloadLabel, w2.Label)

	view, err := app.Mesocycles.Get(context.Background(), "Base")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultIntensity(), view.PreDeload[2])
}

func TestWeekEditor_QuitWhenClean(t *testing.T) {
	app := testApp(t)
	seedMesocycle(t, app, "Base", "4")
	m, d := startEditor(t, app, "Base")

	d.Press(tea.KeyEsc)
	assert.True(t, d.Quitting)
	assert.Empty(t, m.status)
}

func TestWeekEditor_HelpToggle(t *testing.T) {
	app := testApp(t)
	seedMesocycle(t, app, "Base", "4")
	_, d := startEditor(t, app, "Base")

	assert.NotContains(t, d.View(), "cycle preset")
	d.PressKey('?')
	assert.Contains(t, d.View(), "cycle preset")
}

func TestMesocycleEditCmd_RunsEditor(t *testing.T) {
	app := testApp(t)
	seedMesocycle(t, app, "Base", "4")
	app.IsInteractive = func() bool { return true }
	app.RunProgram = func(m tea.Model) (tea.Model, error) {
		d := teatest.New(t, m, teatest.WithCmdTimeout(2*time.Second))
		d.PressKeys("jjdq")
		require.True(t, d.Quitting)
		return d.Model, nil
	}

	_, err := executeCmd(t, app, "mesocycle", "edit", "Base")
	require.NoError(t, err)
	assert.True(t, weekOf(t, app, "Base", 3).IsDeload)
}
