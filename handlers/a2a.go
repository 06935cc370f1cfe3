package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jorget15/UnityAid/bus"
	"github.com/jorget15/UnityAid/types"
)

// A2ASend accepts a message from an external agent and broadcasts it on the
// a2a bus. Application of ResourceMatched events to state happens in the
// applier loop, which subscribes to the same bus; this handler never touches
// the store. Unknown event types are acknowledged and dropped.
func A2ASend(c *gin.Context, a2a *bus.Bus) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev, err := types.DecodeEvent(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if ev != nil {
		a2a.Publish(ev)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
