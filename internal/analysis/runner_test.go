package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-eda/internal/domain"
)

func TestRunAll(t *testing.T) {
	ds := append(factorialDataset(), shallowDataset()...)

	res, err := RunAll(context.Background(), ds, 0.05)
	require.NoError(t, err)
	assert.Equal(t, len(ds), res.Summary.Records)
	assert.NotNil(t, res.TimeOfDay)
	assert.NotNil(t, res.ShallowDepth)
	assert.NotNil(t, res.QuakeCounts)
	assert.Empty(t, res.Skipped)

	verdicts := res.Verdicts()
	require.Len(t, verdicts, 3)
	assert.Equal(t, TestTimeOfDay, verdicts[0].Test)
	assert.Equal(t, TestShallowDepth, verdicts[1].Test)
	assert.Equal(t, TestQuakeCounts, verdicts[2].Test)
	assert.Equal(t, OutcomeInvalid, verdicts[2].Outcome)
}

func TestRunAll_InsufficientTestDoesNotStopOthers(t *testing.T) {
	ds := shallowDataset().Filter(func(q domain.Quake) bool { return q.MagnitudeCategory != domain.Major })
	ds = append(ds, repeat(quake(domain.Night, true, domain.Deep, domain.Minor), 5)...)

	res, err := RunAll(context.Background(), ds, 0.05)
	require.NoError(t, err)
	assert.NotNil(t, res.TimeOfDay)
	assert.Nil(t, res.ShallowDepth)
	assert.Nil(t, res.QuakeCounts)
	assert.Equal(t, 25, res.Summary.Records)

	require.Len(t, res.Skipped, 2)
	assert.Equal(t, TestShallowDepth, res.Skipped[0].Test)
	assert.Equal(t, "Major", res.Skipped[0].Group)
	assert.Equal(t, TestQuakeCounts, res.Skipped[1].Test)

	verdicts := res.Verdicts()
	assert.Equal(t, OutcomeInsufficient, verdicts[1].Outcome)
	assert.Equal(t, OutcomeInsufficient, verdicts[2].Outcome)
}

func TestRunAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunAll(ctx, shallowDataset(), 0.05)
	assert.ErrorIs(t, err, context.Canceled)
}
