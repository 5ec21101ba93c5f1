package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/temper/internal/adapters/cpu/plan"
	"go.trai.ch/temper/internal/core/domain"
)

func samplePlan() *plan.Plan {
	p := plan.New("cpu/amd64")
	p.Inputs = []domain.Tensor{{Name: "x", Type: domain.Float32, Dims: domain.Dims{-1, 4}}}
	p.Outputs = []domain.Tensor{{Name: "y", Type: domain.Float32}}
	p.Profiles = []domain.OptimizationProfile{{Input: "x", Min: domain.Dims{1, 4}, Opt: domain.Dims{2, 4}, Max: domain.Dims{3, 4}}}
	p.Steps = []plan.Step{{
		Layer: &domain.Layer{
			Name: "relu", Kind: domain.LayerActivation, Inputs: []string{"x"},
			Outputs:    []domain.Tensor{{Name: "y", Type: domain.Float32}},
			Activation: &domain.ActivationParams{Type: domain.ActivationReLU},
		},
		Tactic: "activation.generic",
	}}
	return p
}

func TestEncodeDecode(t *testing.T) {
	artifact, err := samplePlan().Encode()
	require.NoError(t, err)
	require.Positive(t, artifact.Len())

	decoded, err := plan.Decode(artifact, "cpu/amd64")
	require.NoError(t, err)
	require.Len(t, decoded.Steps, 1)
	assert.Equal(t, "activation.generic", decoded.Steps[0].Tactic)
	assert.Equal(t, domain.LayerActivation, decoded.Steps[0].Layer.Kind)
	assert.Nil(t, decoded.Steps[0].Layer.Convolution)

	prof, ok := decoded.Profile("x")
	require.True(t, ok)
	assert.Equal(t, domain.Dims{3, 4}, prof.Max)
}

func TestDecode_Errors(t *testing.T) {
	artifact, err := samplePlan().Encode()
	require.NoError(t, err)

	tests := []struct {
		name     string
		artifact domain.CompiledArtifact
		device   string
		errMsg   string
	}{
		{name: "empty", artifact: domain.CompiledArtifact{}, device: "cpu/amd64", errMsg: domain.ErrPlanDecodeFailed.Error()},
		{name: "garbage", artifact: domain.NewCompiledArtifact([]byte{0xc1}), device: "cpu/amd64", errMsg: domain.ErrPlanDecodeFailed.Error()},
		{name: "other device", artifact: artifact, device: "cpu/arm64", errMsg: domain.ErrPlanIncompatible.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := plan.Decode(tt.artifact, tt.device)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}
