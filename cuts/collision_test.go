package cuts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/decibelcooper/ckstar/aod"
)

func TestSelectCollision(t *testing.T) {
	s := NewSelector(Default())

	assert.True(t, s.SelectCollision(aod.Collision{Sel8: true, PosZ: -9.9}))
	assert.False(t, s.SelectCollision(aod.Collision{Sel8: false, PosZ: 0}))
	assert.False(t, s.SelectCollision(aod.Collision{Sel8: true, PosZ: 10}))
}

func TestMultiplicity(t *testing.T) {
	coll := aod.Collision{MultZeqFT0A: 30, MultZeqFT0C: 12, CentFT0C: 45, CentFT0M: 47}

	tests := []struct {
		est  Estimator
		want float64
	}{
		{FT0Sum, 42},
		{CentFT0C, 45},
		{CentFT0M, 47},
	}
	for _, tt := range tests {
		t.Run(tt.est.String(), func(t *testing.T) {
			c := Default()
			c.Estimator = tt.est
			assert.Equal(t, tt.want, NewSelector(c).Multiplicity(coll))
		})
	}
}

func TestEstimatorFromFlags(t *testing.T) {
	assert.Equal(t, FT0Sum, EstimatorFromFlags(true, true))
	assert.Equal(t, FT0Sum, EstimatorFromFlags(true, false))
	assert.Equal(t, CentFT0C, EstimatorFromFlags(false, true))
	assert.Equal(t, CentFT0M, EstimatorFromFlags(false, false))
}

func TestCutsYAML(t *testing.T) {
	var c Cuts
	err := yaml.Unmarshal([]byte(`
estimator: ft0-sum
track:
  policy: custom-dca
  its_cluster_min: 2
`), &c)
	require.NoError(t, err)
	assert.Equal(t, FT0Sum, c.Estimator)
	assert.Equal(t, CustomDCA, c.Track.Policy)
	assert.Equal(t, 2, c.Track.ITSClusterMin)

	out, err := yaml.Marshal(Default())
	require.NoError(t, err)
	assert.Contains(t, string(out), "estimator: cent-ft0c")
	assert.Contains(t, string(out), "policy: manual-dca")

	err = yaml.Unmarshal([]byte("estimator: tracklets\n"), &c)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	c := Default()
	c.V0.RadiusMin = 300
	c.Estimator = 0
	err := c.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, err.Error(), "radius_min")
	assert.Contains(t, err.Error(), "estimator")
}
