package notify

import (
	"context"
	"time"

	"github.com/lib/pq"

	"blueeyes-backoffice/internal/logger"
)

const channel = "table_change"

// Listener consumes PostgreSQL NOTIFY events so in-process caches can be
// invalidated when another writer (a second server, psql, the cronjob)
// touches a table.
type Listener struct {
	pq       *pq.Listener
	handlers map[string]func()
}

// NewListener connects a LISTEN session on the given connection string.
// handlers maps a table name to the invalidation callback to run when
// that table changes.
func NewListener(connStr string, handlers map[string]func()) (*Listener, error) {
	l := pq.NewListener(connStr, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Error("database listener event", "event", int(ev), "error", err)
		}
	})
	if err := l.Listen(channel); err != nil {
		l.Close()
		return nil, err
	}
	return &Listener{pq: l, handlers: handlers}, nil
}

// Run blocks dispatching notifications until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) {
	defer l.pq.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-l.pq.Notify:
			if n == nil {
				// Connection was re-established. Notifications may have been
				// missed, so invalidate everything.
				logger.Warn("database listener reconnected, invalidating caches")
				for _, h := range l.handlers {
					h()
				}
				continue
			}
			if h, ok := l.handlers[n.Extra]; ok {
				logger.Debug("table change notification", "table", n.Extra)
				h()
			}
		case <-time.After(90 * time.Second):
			go l.pq.Ping()
		}
	}
}
