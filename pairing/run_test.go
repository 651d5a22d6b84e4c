package pairing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/decibelcooper/ckstar/aod"
	"github.com/decibelcooper/ckstar/cuts"
)

func runEvents() []aod.Event {
	var events []aod.Event
	for i := int64(0); i < 4; i++ {
		events = append(events, simpleEvent(collision(i)))
	}
	c := collision(4)
	c.PosZ = -5
	return append(events, simpleEvent(c))
}

func TestRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	same, mixed := new(recorder), new(recorder)
	eng := NewEngine(cuts.Default(), Sinks{Same: same, Mixed: mixed}, WithLogger(zaptest.NewLogger(t)))

	err := eng.Run(context.Background(), runEvents(), RunOptions{
		Mixing:  DefaultMixing(),
		Workers: 3,
	})
	require.NoError(t, err)

	st := eng.Stats()
	assert.Equal(t, int64(5), st.Collisions)
	assert.Equal(t, int64(5), st.SameFills)
	assert.Equal(t, int64(6), st.MixedPairs)
	assert.Equal(t, int64(6), st.MixedFills)
	assert.Len(t, same.sorted(), 5)
	assert.Len(t, mixed.sorted(), 6)
}

func TestRunOrderIndependent(t *testing.T) {
	defer goleak.VerifyNone(t)

	run := func(workers int) ([]fill, []fill) {
		same, mixed := new(recorder), new(recorder)
		eng := NewEngine(cuts.Default(), Sinks{Same: same, Mixed: mixed})
		require.NoError(t, eng.Run(context.Background(), runEvents(), RunOptions{
			Mixing:  DefaultMixing(),
			Workers: workers,
		}))
		return same.sorted(), mixed.sorted()
	}

	s1, m1 := run(1)
	s8, m8 := run(8)
	if diff := cmp.Diff(s1, s8); diff != "" {
		t.Errorf("same-event fills depend on workers (-1 +8):\n%s", diff)
	}
	if diff := cmp.Diff(m1, m8); diff != "" {
		t.Errorf("mixed-event fills depend on workers (-1 +8):\n%s", diff)
	}
}

func TestRunSwitches(t *testing.T) {
	defer goleak.VerifyNone(t)

	same, mixed := new(recorder), new(recorder)
	eng := NewEngine(cuts.Default(), Sinks{Same: same, Mixed: mixed})
	require.NoError(t, eng.Run(context.Background(), runEvents(), RunOptions{NoMixed: true}))
	assert.Len(t, same.sorted(), 5)
	assert.Empty(t, mixed.sorted())

	err := eng.Run(context.Background(), runEvents(), RunOptions{NoSame: true})
	assert.True(t, errors.Is(err, ErrInvalid), "zero mixing configuration must be rejected")
}

func TestRunError(t *testing.T) {
	defer goleak.VerifyNone(t)

	events := runEvents()
	v := events[2].V0s.Record(0)
	v.PosTrackID = 12345
	events[2].V0s = aod.NewV0s(v)

	eng := NewEngine(cuts.Default(), Sinks{Same: new(recorder), Mixed: new(recorder)})
	err := eng.Run(context.Background(), events, RunOptions{Mixing: DefaultMixing(), Workers: 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, aod.ErrUnresolvedDaughter))
}

func TestRunCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	same := new(recorder)
	eng := NewEngine(cuts.Default(), Sinks{Same: same, Mixed: new(recorder)})
	err := eng.Run(ctx, runEvents(), RunOptions{Mixing: DefaultMixing()})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, same.sorted())
}
