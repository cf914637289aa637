//go:build integration

package channels

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"prefsync/pkg/testutil/containers"
)

func TestRedisAdapter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)

	runAdapterContract(t, func(t *testing.T) channelAdapter {
		// A fresh prefix per subtest keeps the index sets apart.
		return NewRedis(rc.Client, "test-"+uuid.NewString(), WithDefaultVibrate(false))
	})
}

func TestRedisAdapter_SkipsDanglingIndexEntries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	rc := containers.GetManager().GetRedis(t)
	a := NewRedis(rc.Client, "dangling-"+uuid.NewString())

	require.NoError(t, rc.Client.SAdd(ctx, a.indexKey(), "+15550001").Err())
	all, err := a.Channels(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}
