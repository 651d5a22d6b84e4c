package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/ckstar/cuts"
	"github.com/decibelcooper/ckstar/pairing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10.0, cfg.Event.ZVertexMax)
	assert.Equal(t, 5, cfg.Mixing.Depth)
	assert.Equal(t, pairing.NumContrib, cfg.Mixing.Binning.Variable)
	assert.True(t, cfg.Process.Same)
	assert.True(t, cfg.Process.Mixed)
	assert.False(t, cfg.QA.V0)
}

func TestDecodeOverrides(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
estimator: ft0-sum
track:
  policy: custom-dca
v0:
  cpa_min: 0.99
mixing:
  depth: 10
  multiplicity: {edges: [0, 10, 20, 50, 100]}
  variable: estimator
qa:
  v0: true
process:
  mixed: false
`))
	require.NoError(t, err)

	assert.Equal(t, cuts.FT0Sum, cfg.Estimator)
	assert.Equal(t, cuts.CustomDCA, cfg.Track.Policy)
	assert.Equal(t, 0.99, cfg.V0.CosPAMin)
	assert.Equal(t, 0.3, cfg.V0.DCAToPVMax, "unset keys keep their default")
	assert.Equal(t, 10, cfg.Mixing.Depth)
	assert.Equal(t, pairing.Variable(0, 10, 20, 50, 100), cfg.Mixing.Binning.Mult)
	assert.Equal(t, pairing.Uniform(20, -10, 10), cfg.Mixing.Binning.Vertex)
	assert.True(t, cfg.QA.V0)
	assert.True(t, cfg.Process.Same)
	assert.False(t, cfg.Process.Mixed)
}

func TestDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		name, doc string
	}{
		{"unknown-key", "track:\n  pt_max: 3\n"},
		{"bad-estimator", "estimator: nope\n"},
		{"bad-syntax", "track: [\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.doc))
			assert.Error(t, err)
		})
	}

	_, err := Decode(strings.NewReader("mixing:\n  depth: 0\n"))
	assert.True(t, errors.Is(err, pairing.ErrInvalid))

	_, err = Decode(strings.NewReader("v0:\n  radius_min: 500\n"))
	assert.True(t, errors.Is(err, cuts.ErrInvalid))

	// mixing is not validated when the mixed pass is off
	_, err = Decode(strings.NewReader("mixing:\n  depth: 0\nprocess:\n  mixed: false\n"))
	assert.NoError(t, err)
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("empty name mismatch (-want +got):\n%s", diff)
	}

	fname := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(fname, []byte("event:\n  cut_zvertex: 7\n"), 0o644))
	cfg, err = Load(fname)
	require.NoError(t, err)
	assert.Equal(t, 7.0, cfg.Event.ZVertexMax)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	want := Default()
	want.QA.TracksAfter = true
	want.Mixing.Binning.Mult = pairing.Variable(0, 5, 10, 10000)

	var buf bytes.Buffer
	require.NoError(t, want.Write(&buf))

	got, err := Decode(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
