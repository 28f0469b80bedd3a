package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMesocycleProgression_JSONStrategyKey(t *testing.T) {
	p := MesocycleProgression{
		ID:                 "prog-1",
		MesocycleID:        "meso-1",
		WeeklyProgressions: DefaultWeeks(2),
		ProgressionType:    ProgressionLinear,
		GlobalSettings:     DefaultGlobalSettings(),
	}

	var raw map[string]any
	data, err := json.Marshal(p)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "progressionStrategy", "no strategy")
	assert.Contains(t, raw, "weeklyProgressions")

	p.ProgressionStrategy = Ptr(PeakingStrategy())
	data, err = json.Marshal(p)
	require.NoError(t, err)
	raw = nil
	require.NoError(t, json.Unmarshal(data, &raw))
	strategy, ok := raw["progressionStrategy"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "intensity", strategy["primary"])
}
