package hazard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelNames(t *testing.T) {
	assert.Equal(t, "none", FogNone.String())
	assert.Equal(t, "alto", FogAlto.String())
	assert.Equal(t, "nulo", ConvectiveNulo.String())
	assert.Equal(t, "critico", ConvectiveCritico.String())
}

func TestLevelText(t *testing.T) {
	data, err := json.Marshal(map[string]any{"fog": FogModerado, "convective": ConvectiveAlto})
	require.NoError(t, err)
	assert.JSONEq(t, `{"fog":"moderado","convective":"alto"}`, string(data))

	var got struct {
		Fog        FogLevel        `json:"fog"`
		Convective ConvectiveLevel `json:"convective"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, FogModerado, got.Fog)
	assert.Equal(t, ConvectiveAlto, got.Convective)

	var fog FogLevel
	assert.Error(t, fog.UnmarshalText([]byte("severo")))
	var conv ConvectiveLevel
	assert.Error(t, conv.UnmarshalText([]byte("extremo")))
}

func TestAssessmentAtLeast(t *testing.T) {
	a := FogAssessment{Level: FogModerado}

	assert.True(t, a.AtLeast(FogBajo))
	assert.True(t, a.AtLeast(FogModerado))
	assert.False(t, a.AtLeast(FogAlto))
}
