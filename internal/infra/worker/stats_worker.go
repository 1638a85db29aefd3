package worker

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/calemorrison/funnel-api/internal/infra/http/middleware"
)

// FunnelStatsWorker refreshes the trailing-24h per-funnel event gauges.
type FunnelStatsWorker struct {
	db           *sql.DB
	tickInterval time.Duration
}

func NewFunnelStatsWorker(db *sql.DB) *FunnelStatsWorker {
	return &FunnelStatsWorker{
		db:           db,
		tickInterval: 5 * time.Minute,
	}
}

func (w *FunnelStatsWorker) Start(ctx context.Context) {
	log.Println("🕒 Funnel stats worker started (24h window)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Funnel stats worker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *FunnelStatsWorker) refresh(ctx context.Context) {
	query := `
		SELECT funnel_id, event_type, COUNT(*)
		FROM events
		WHERE created_at > NOW() - INTERVAL '24 hours'
		GROUP BY funnel_id, event_type
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ funnel stats query failed: %v", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var funnelID, eventType string
		var count float64

		if err := rows.Scan(&funnelID, &eventType, &count); err != nil {
			log.Printf("⚠️ funnel stats scan failed: %v", err)
			continue
		}

		middleware.SetFunnelEventCount(funnelID, eventType, count)
	}
}
