package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBatch_PreservesOrder(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	docs := [][]byte{
		[]byte(`{"profileOverview": {"targetRole": "first"}}`),
		[]byte(`not json`),
		[]byte(`{"profileOverview": {"targetRole": "third"}}`),
		nil,
	}

	out, err := svc.NormalizeBatch(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, "first", out[0].Report.ProfileOverview.TargetRole)
	assert.False(t, out[0].Defects.Malformed())
	assert.True(t, out[1].Defects.Malformed())
	assert.Equal(t, "third", out[2].Report.ProfileOverview.TargetRole)
	assert.True(t, out[3].Defects.Malformed())
}

func TestNormalizeBatch_Empty(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	out, err := svc.NormalizeBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NotNil(t, out)
}

func TestNormalizeBatch_Cancelled(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.NormalizeBatch(ctx, [][]byte{[]byte(`{}`)})
	assert.ErrorIs(t, err, context.Canceled)
}
