package analytics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calemorrison/funnel-api/internal/infra/analytics"
	"github.com/calemorrison/funnel-api/internal/infra/queue"
)

func TestDataLayerKeepsPushOrder(t *testing.T) {
	dl := analytics.NewDataLayer()

	dl.Push(context.Background(), queue.TagPayload{Event: "page_view", FunnelID: "f"})
	dl.Push(context.Background(), queue.TagPayload{Event: "video_view", FunnelID: "f"})
	dl.Push(context.Background(), queue.TagPayload{Event: "form_submit", FunnelID: "f"})

	tags := dl.Tags()
	assert.Len(t, tags, 3)
	assert.Equal(t, "page_view", tags[0].Event)
	assert.Equal(t, "video_view", tags[1].Event)
	assert.Equal(t, "form_submit", tags[2].Event)
}

func TestDataLayerSnapshotIsIndependent(t *testing.T) {
	dl := analytics.NewDataLayer()
	dl.Push(context.Background(), queue.TagPayload{Event: "page_view", FunnelID: "f"})

	snap := dl.Tags()
	dl.Push(context.Background(), queue.TagPayload{Event: "form_submit", FunnelID: "f"})

	assert.Len(t, snap, 1)
	assert.Equal(t, 2, dl.Len())
}
