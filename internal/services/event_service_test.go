package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_NewestFirstAndLimit(t *testing.T) {
	svc := NewEventService(newTestStore(t))

	svc.CreateEvent("user.signup", "info", "Ana joined.", nil)
	svc.CreateEvent("post.create", "info", "Ana published a post.", nil)

	events := svc.GetRecentEvents(20)
	require.Len(t, events, 2)
	assert.Equal(t, "post.create", events[0].Type)
	assert.Equal(t, "user.signup", events[1].Type)

	assert.Len(t, svc.GetRecentEvents(1), 1)
}

func TestEventService_CapsStoredEvents(t *testing.T) {
	svc := NewEventService(newTestStore(t))

	for i := 0; i < maxStoredEvents+5; i++ {
		svc.CreateEvent("post.like", "info", fmt.Sprintf("event %d", i), nil)
	}

	events := svc.GetRecentEvents(maxStoredEvents * 2)
	assert.Len(t, events, maxStoredEvents)
	// The newest event survives the cap.
	assert.Equal(t, fmt.Sprintf("event %d", maxStoredEvents+4), events[0].Message)
}
