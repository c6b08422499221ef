package observer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullDiscardsSnapshots(t *testing.T) {
	var o Null
	o.Publish(Snapshot{Width: 10, Height: 10})
	assert.Nil(t, o.AwaitAck())
}

func TestRecordingBuffersSnapshots(t *testing.T) {
	r := &Recording{}
	r.Publish(Snapshot{Width: 1})
	r.Publish(Snapshot{Width: 2})
	assert.Len(t, r.Snapshots, 2)
	assert.Equal(t, 2.0, r.Snapshots[1].Width)
	assert.Nil(t, r.AwaitAck())
}
