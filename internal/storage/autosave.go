package storage

import (
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-planner/internal/planner"
)

// AutoSaver returns a planner listener that writes every committed change to
// store. A failed save is logged and otherwise ignored: the in-memory change
// stands and the next successful save catches the file up.
func AutoSaver(store Saver, log *zap.Logger) planner.Listener {
	if log == nil {
		log = zap.NewNop()
	}
	return func(ev planner.Event) {
		if err := store.Save(ev.Snapshot); err != nil {
			log.Error("autosave failed",
				zap.String("event_id", ev.ID),
				zap.Error(err))
			return
		}
		log.Debug("planner saved",
			zap.String("event_id", ev.ID),
			zap.Int("cinemas", ev.Cinemas),
			zap.Int("movies", ev.Movies),
			zap.Int("tags", ev.Tags))
	}
}
