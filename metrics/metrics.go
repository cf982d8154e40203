package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector exposes counters used for manual reconciliation of cascade
// cleanups: every dependent collection swept during a parent deletion is
// reported here, whether it succeeded or not.
type Collector struct {
	cascadeDocsRemoved  *prometheus.CounterVec
	cascadeFailures     *prometheus.CounterVec
	projectionRequests  *prometheus.CounterVec
	playlistConflicts   prometheus.Counter
}

func NewCollector() *Collector {
	return &Collector{
		cascadeDocsRemoved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "videoservice_cascade_docs_removed_total",
			Help: "Dependent documents removed by cascade cleanup",
		}, []string{"parent_kind", "collection"}),

		cascadeFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "videoservice_cascade_failures_total",
			Help: "Cascade cleanup steps that failed and may have left orphans",
		}, []string{"parent_kind", "collection"}),

		projectionRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "videoservice_projection_requests_total",
			Help: "Read-model projections served",
		}, []string{"projection"}),

		playlistConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "videoservice_playlist_membership_conflicts_total",
			Help: "Playlist batch operations rejected on membership conflict",
		}),
	}
}

func (c *Collector) CascadeDocsRemoved(parentKind, collection string, count int64) {
	c.cascadeDocsRemoved.WithLabelValues(parentKind, collection).Add(float64(count))
}

func (c *Collector) CascadeFailure(parentKind, collection string) {
	c.cascadeFailures.WithLabelValues(parentKind, collection).Inc()
}

func (c *Collector) ProjectionServed(projection string) {
	c.projectionRequests.WithLabelValues(projection).Inc()
}

func (c *Collector) PlaylistConflict() {
	c.playlistConflicts.Inc()
}
