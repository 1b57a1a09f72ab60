package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConnectorDialRespectsCallerDeadline(t *testing.T) {
	// nothing listens on port 1; only the caller's deadline ends server selection
	c := NewConnector("mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=30000", "newsdesk", NewDiscardLogger())
	t.Cleanup(func() { _ = c.Close(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := c.Ping(ctx)

	assert.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
	assert.Nil(t, c.cached())
}
