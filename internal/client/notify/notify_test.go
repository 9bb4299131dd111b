package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_PublishAndRecent(t *testing.T) {
	c := NewCenter()

	c.Successf("saved")
	c.Errorf("failed")
	c.Infof("logged out")

	feed := c.Recent()
	require.Len(t, feed, 3)
	assert.Equal(t, Success, feed[0].Variant)
	assert.Equal(t, "saved", feed[0].Message)
	assert.Equal(t, Error, feed[1].Variant)
	assert.Equal(t, Info, feed[2].Variant)
	assert.NotEmpty(t, feed[0].ID)
}

func TestCenter_SubscribeReceives(t *testing.T) {
	c := NewCenter()
	ch, cancel := c.Subscribe()
	defer cancel()

	c.Warningf("heads up")

	got := <-ch
	assert.Equal(t, Warning, got.Variant)
	assert.Equal(t, "heads up", got.Message)
}

func TestCenter_PublishNeverBlocks(t *testing.T) {
	c := NewCenter()
	_, cancel := c.Subscribe()
	defer cancel()

	// Overfill the subscriber buffer; publishing must not stall.
	for i := 0; i < 100; i++ {
		c.Infof("msg")
	}
	assert.Len(t, c.Recent(), 100)
}

func TestCenter_FeedIsBounded(t *testing.T) {
	c := NewCenter()
	for i := 0; i < 150; i++ {
		c.Infof("msg")
	}
	assert.Len(t, c.Recent(), 100)
}

func TestCenter_CancelStopsDelivery(t *testing.T) {
	c := NewCenter()
	ch, cancel := c.Subscribe()
	cancel()

	c.Infof("after cancel")
	_, open := <-ch
	assert.False(t, open)
}
