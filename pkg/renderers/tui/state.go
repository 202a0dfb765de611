package tui

import (
	"fmt"

	"github.com/goliatone/go-liveselect/pkg/liveselect"
	"github.com/goliatone/go-liveselect/pkg/model"
)

// singlePlan returns the toggles that leave choice selected. Choosing the
// option that is already selected keeps it, unlike a raw toggle.
func singlePlan(engine *liveselect.Engine, valueKey string, choice model.Option) []any {
	value := model.ValueOf(choice, valueKey)
	if engine.IsSelected(value) {
		return nil
	}
	return []any{value}
}

// multiPlan returns the toggles turning the current selection into the picked
// options: deselections first in selection order, then additions in ranked
// order. Selected values hidden from the ranked list stay untouched.
func multiPlan(engine *liveselect.Engine, valueKey string, ranked []model.Option, picked []int) ([]any, error) {
	want := make([]bool, len(ranked))
	for _, idx := range picked {
		if idx < 0 || idx >= len(ranked) {
			return nil, fmt.Errorf("tui: selected index %d out of range", idx)
		}
		want[idx] = true
	}

	var plan []any
	for _, selected := range engine.Selected() {
		value := model.ValueOf(selected, valueKey)
		at := model.IndexOf(ranked, valueKey, value)
		if at >= 0 && !want[at] {
			plan = append(plan, value)
		}
	}
	for i, option := range ranked {
		value := model.ValueOf(option, valueKey)
		if want[i] && !engine.IsSelected(value) {
			plan = append(plan, value)
		}
	}
	return plan, nil
}
