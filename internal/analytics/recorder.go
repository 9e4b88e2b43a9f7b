// Package analytics records menu interaction telemetry. It is a pure
// observer: it subscribes to the coordinator's events and writes one row per
// interaction; nothing here ever feeds back into navigation state.
package analytics

import (
	"context"
	"database/sql"
	"log"

	"github.com/google/uuid"

	"github.com/orbitnav/orbitnav/nav"
)

// Interaction is one recorded menu event.
type Interaction struct {
	ID         string
	EventType  string
	ItemID     string
	MenuOpen   bool
	OccurredAt string
}

// EventCount aggregates interactions per event type and item.
type EventCount struct {
	EventType string
	ItemID    string
	Count     int
}

// Recorder persists coordinator events to sqlite.
type Recorder struct {
	db     *sql.DB
	logger *log.Logger
}

// NewRecorder wires a recorder onto db. A nil logger falls back to the
// default logger.
func NewRecorder(db *sql.DB, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{db: db, logger: logger}
}

// Attach subscribes the recorder to every event type the coordinator emits
// and returns a detach function. Write failures are logged and swallowed:
// telemetry must never disturb navigation.
func (r *Recorder) Attach(c *nav.Coordinator) func() {
	unsubs := make([]func(), 0, len(nav.EventTypes()))
	for _, t := range nav.EventTypes() {
		unsubs = append(unsubs, c.On(t, r.record))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func (r *Recorder) record(e nav.Event) {
	_, err := r.db.ExecContext(context.Background(), `
	INSERT INTO interactions(id, event_type, item_id, menu_open, occurred_at)
	VALUES (?, ?, ?, ?, ?);
	`, uuid.NewString(), string(e.Type), e.ItemID, e.State.IsOpen, e.Time.UTC())
	if err != nil {
		r.logger.Printf("analytics: record %s: %v", e.Type, err)
	}
}

// Summary returns interaction counts grouped by event type and item,
// most frequent first.
func (r *Recorder) Summary(ctx context.Context) ([]EventCount, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT event_type, item_id, COUNT(*)
	FROM interactions
	GROUP BY event_type, item_id
	ORDER BY COUNT(*) DESC, event_type, item_id;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EventCount
	for rows.Next() {
		var ec EventCount
		if err := rows.Scan(&ec.EventType, &ec.ItemID, &ec.Count); err != nil {
			return nil, err
		}
		out = append(out, ec)
	}
	return out, rows.Err()
}

// Recent returns the latest n interactions, newest first.
func (r *Recorder) Recent(ctx context.Context, n int) ([]Interaction, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, event_type, item_id, menu_open, occurred_at
	FROM interactions
	ORDER BY occurred_at DESC, recorded_at DESC
	LIMIT ?;
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Interaction
	for rows.Next() {
		var it Interaction
		if err := rows.Scan(&it.ID, &it.EventType, &it.ItemID, &it.MenuOpen, &it.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
