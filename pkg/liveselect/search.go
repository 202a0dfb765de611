package liveselect

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/goliatone/go-liveselect/internal/similarity"
	"github.com/goliatone/go-liveselect/pkg/model"
)

// Ranker orders labels against a non-empty query. It returns a permutation of
// the label indices: every index exactly once.
type Ranker func(query string, labels []string) []int

// SimilarityRanker scores each label by the characters it shares with the
// query and sorts by descending score. Equal scores keep their source order.
func SimilarityRanker(query string, labels []string) []int {
	scores := make([]int, len(labels))
	for idx, label := range labels {
		scores[idx] = similarity.Text(query, label)
	}

	order := identity(len(labels))
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	return order
}

// FuzzyRanker puts fuzzy matches first, best match first, and keeps the
// labels that do not match after them in source order.
func FuzzyRanker(query string, labels []string) []int {
	matches := fuzzy.Find(query, labels)

	order := make([]int, 0, len(labels))
	matched := make(map[int]struct{}, len(matches))
	for _, match := range matches {
		order = append(order, match.Index)
		matched[match.Index] = struct{}{}
	}
	for idx := range labels {
		if _, ok := matched[idx]; ok {
			continue
		}
		order = append(order, idx)
	}
	return order
}

// SortedOptions returns the options ranked against the current search text.
// It is recomputed on every call; with an empty search text the options come
// back in source order.
func (e *Engine) SortedOptions() []model.Option {
	return e.Rank(e.searchText)
}

// Rank orders the options against query without touching the search text.
func (e *Engine) Rank(query string) []model.Option {
	if query == "" {
		return model.CloneOptions(e.options)
	}

	labels := make([]string, len(e.options))
	for idx, option := range e.options {
		labels[idx] = model.LabelOf(option, e.cfg.LabelKey)
	}

	order := e.ranker(query, labels)
	if !isPermutation(order, len(e.options)) {
		e.logger.Warn("liveselect: ranker returned an invalid order, keeping source order",
			"model", e.cfg.Model,
		)
		return model.CloneOptions(e.options)
	}

	sorted := make([]model.Option, 0, len(order))
	for _, idx := range order {
		sorted = append(sorted, e.options[idx])
	}
	return sorted
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}
