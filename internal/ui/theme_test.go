package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"liferpg/internal/progression"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[#####-----]", ProgressBar(50, 100, 10))
	assert.Equal(t, "[----------]", ProgressBar(-5, 100, 10))
	assert.Equal(t, "[##########]", ProgressBar(500, 100, 10))
	assert.Equal(t, "[---]", ProgressBar(0, 0, 1))
}

func TestEffectIcon(t *testing.T) {
	assert.Equal(t, IconBolt, EffectIcon(progression.KindXPBoost))
	assert.Equal(t, IconShield, EffectIcon(progression.KindStreakRecovery))
	assert.Equal(t, IconSparkle, EffectIcon("unknown"))
}
