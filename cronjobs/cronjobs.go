package cronjobs

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/jorget15/UnityAid/store"
)

// InitCronJobs schedules the background maintenance jobs and starts the
// scheduler. The returned cron can be stopped on shutdown.
func InitCronJobs(st *store.Store) *cron.Cron {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// Re-match sweep: unmatched reports go back on the queue every minute
	// so they get retried once resource capacity frees up.
	_, err := c.AddFunc("* * * * *", func() {
		n := st.RequeueUnmatched()
		if n > 0 {
			log.Printf("CronJob: re-match sweep queued %d unmatched reports", n)
		}
	})
	if err != nil {
		log.Println("Error scheduling re-match sweep", err)
	}

	c.Start()
	return c
}
