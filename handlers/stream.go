package handlers

import (
	"fmt"
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/jorget15/UnityAid/bus"
	"github.com/jorget15/UnityAid/types"
)

// StreamEvents serves one subscriber's view of a bus as an SSE stream:
// newline-delimited "data: <json>" frames on a persistent response. The
// subscription slot is released when the client goes away.
func StreamEvents(c *gin.Context, b *bus.Bus) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case ev, ok := <-sub.C:
			if !ok {
				return false
			}
			payload, err := types.EncodeEvent(ev)
			if err != nil {
				log.Printf("stream: failed to encode %s event: %v", ev.EventType(), err)
				return true
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			return true
		}
	})
}
