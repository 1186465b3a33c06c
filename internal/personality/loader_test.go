package personality

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/okanevale/temperament/internal/domain"
)

func TestLoad_MissingFileFallsBackToTemplate(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())

	assert.Equal(t, "Template Agent", p.Name)
	require.NotNil(t, p.EmotionalState)
	assert.Equal(t, "curious", p.EmotionalState.BaseState)
}

func TestLoad_MalformedJSONFallsBackToTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personality.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	p := Load(path, zap.NewNop())

	assert.Equal(t, "Template Agent", p.Name)
}

func TestLoad_InvalidPersonalityFallsBackToTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personality.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "Half Built"}`), 0o644))

	p := Load(path, zap.NewNop())

	assert.Equal(t, "Template Agent", p.Name, "incomplete records are rejected")
}

func TestLoad_ValidFile(t *testing.T) {
	valid := DefaultTemplate()
	valid.Name = "Custom Agent"
	valid.Tone = "sardonic"

	data, err := json.MarshalIndent(valid, "", "  ")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "personality.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	p := Load(path, zap.NewNop())

	assert.Equal(t, "Custom Agent", p.Name)
	assert.Equal(t, "sardonic", p.Tone)
	assert.Equal(t, 20, p.Memory.ShortTermCapacity)
}

func TestDefaultTemplate_IsValid(t *testing.T) {
	assert.Empty(t, Validate(DefaultTemplate()))
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	p := DefaultTemplate()
	p.Name = ""
	p.Tone = ""
	p.EmotionalState.Intensity = 1.5
	p.Memory.ShortTermCapacity = 0

	errs := Validate(p)

	assert.Len(t, errs, 4)
}

func TestValidate_TriggerRules(t *testing.T) {
	p := DefaultTemplate()
	p.EmotionalState.Triggers[0].Words = nil

	errs := Validate(p)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "has no words")
}

func TestValidate_RequiresWeights(t *testing.T) {
	p := DefaultTemplate()
	p.Learning.Metrics = domain.MetricWeights{}

	errs := Validate(p)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least one positive weight")
}
