package metrics

import (
	"sync/atomic"
)

// Movies counts domain events of the movie list.
type Movies struct {
	searchesTotal         atomic.Int64
	upstreamFailuresTotal atomic.Int64
	moviesAddedTotal      atomic.Int64
	moviesUpdatedTotal    atomic.Int64
	moviesDeletedTotal    atomic.Int64
	rankingsComputedTotal atomic.Int64
}

var global = &Movies{}

func IncrementSearches() {
	global.searchesTotal.Add(1)
}

func IncrementUpstreamFailures() {
	global.upstreamFailuresTotal.Add(1)
}

func IncrementMoviesAdded() {
	global.moviesAddedTotal.Add(1)
}

func IncrementMoviesUpdated() {
	global.moviesUpdatedTotal.Add(1)
}

func IncrementMoviesDeleted() {
	global.moviesDeletedTotal.Add(1)
}

func IncrementRankingsComputed() {
	global.rankingsComputedTotal.Add(1)
}

func GetSearches() int64 {
	return global.searchesTotal.Load()
}

func GetUpstreamFailures() int64 {
	return global.upstreamFailuresTotal.Load()
}

func GetMoviesAdded() int64 {
	return global.moviesAddedTotal.Load()
}

func GetMoviesUpdated() int64 {
	return global.moviesUpdatedTotal.Load()
}

func GetMoviesDeleted() int64 {
	return global.moviesDeletedTotal.Load()
}

func GetRankingsComputed() int64 {
	return global.rankingsComputedTotal.Load()
}

func Reset() {
	global.searchesTotal.Store(0)
	global.upstreamFailuresTotal.Store(0)
	global.moviesAddedTotal.Store(0)
	global.moviesUpdatedTotal.Store(0)
	global.moviesDeletedTotal.Store(0)
	global.rankingsComputedTotal.Store(0)
	ResetRequestMetrics()
}
