package apiv1

import (
	"context"
	"os"
	"testing"

	"github.com/dukahub/dukaweb/pkg/config"
	"github.com/dukahub/dukaweb/pkg/tutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live backend: create, read, update, count and delete one customer.
func TestClientAgainstBackend(t *testing.T) {
	tutil.SkipUnlessIntegration(t, config.APIURLKey)

	c := NewClient(os.Getenv(config.APIURLKey), os.Getenv(config.APITokenKey))
	ctx := context.Background()

	created, err := c.Create(ctx, "customer", Record{"name": "dukaweb integration", "phoneNumber": "0700000000"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID())
	defer func() { _ = c.Delete(ctx, "customer", Condition{"_id": created.ID()}) }()

	read, err := c.Read(ctx, ByID("customer", created.ID()))
	require.NoError(t, err)
	assert.Equal(t, "dukaweb integration", read.String("name"))

	_, err = c.Update(ctx, "customer", Condition{"_id": created.ID()}, Record{"name": "dukaweb integration 2"})
	require.NoError(t, err)

	count, err := c.CountAll(ctx, Query{Schema: "customer", Condition: Condition{"_id": created.ID()}})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
