package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jorget15/UnityAid/bus"
	"github.com/jorget15/UnityAid/store"
	"github.com/jorget15/UnityAid/types"
)

// PostReport validates and ingests a new report, then announces it on both
// buses: the UI stream gets the report mirror, the a2a bus gets the
// ReportCreated event that starts the agent choreography.
func PostReport(c *gin.Context, st *store.Store, stream, a2a *bus.Bus) {
	var in types.ReportIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rep, err := st.CreateReport(in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stream.Publish(types.ReportEvent{Report: rep})
	a2a.Publish(types.ReportCreatedEvent{Report: rep})

	c.JSON(http.StatusOK, rep)
}

func ListReports(c *gin.Context, st *store.Store) {
	c.JSON(http.StatusOK, st.ListReports())
}

func ListResources(c *gin.Context, st *store.Store) {
	c.JSON(http.StatusOK, st.ListResources())
}

func MapGeoJSON(c *gin.Context, st *store.Store) {
	c.JSON(http.StatusOK, types.BuildGeoJSON(st.ListReports(), st.ListResources()))
}

func Health(c *gin.Context, st *store.Store) {
	reports, resources := st.Counts()
	c.JSON(http.StatusOK, gin.H{"ok": true, "reports": reports, "resources": resources})
}
