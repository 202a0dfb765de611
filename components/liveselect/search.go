package liveselect

import (
	"github.com/goliatone/go-liveselect/pkg/liveselect"
	"github.com/goliatone/go-liveselect/pkg/model"
)

// SearchOptions ranks the engine options against query and returns at most
// limit of them as value/label pairs. An empty query keeps source order.
// Labels are read through the widget's label key.
func SearchOptions(engine *liveselect.Engine, query string, limit int) []Option {
	if engine == nil || limit <= 0 {
		return []Option{}
	}

	cfg := engine.Config()
	ranked := engine.Rank(query)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]Option, 0, len(ranked))
	for _, option := range ranked {
		out = append(out, Option{
			Value: model.ValueOf(option, cfg.ValueKey),
			Label: model.LabelOf(option, cfg.LabelKey),
		})
	}
	return out
}
