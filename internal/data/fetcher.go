package data

import (
	"context"
	"time"

	"investeasy/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultMaxAge is how long a fetched snapshot is served without a refresh.
	DefaultMaxAge = time.Hour
	// DefaultFetchTimeout bounds the single outbound call of a refresh.
	DefaultFetchTimeout = 5 * time.Second

	indicatorsKey = "indicators"
)

// RatesSource returns raw SGS observations. BCBClient and FileSource implement it.
type RatesSource interface {
	FetchLatest(ctx context.Context, q SeriesQuery) ([]model.Observation, error)
}

// FetcherConfig tunes cache freshness and the outbound timeout.
type FetcherConfig struct {
	MaxAge  time.Duration
	Timeout time.Duration
}

// Lookup is an indicator snapshot plus where it came from.
type Lookup struct {
	Snapshot  model.IndicatorSnapshot
	FetchedAt time.Time
	// Stale is set when the refresh failed and an expired cache entry was served.
	Stale bool
}

// Fetcher serves market indicators from the cache, refreshing on demand.
//
// Refreshes are coalesced: concurrent callers that find the cache expired share a
// single outbound request. The cache lock is never held during network I/O.
type Fetcher struct {
	source  RatesSource
	cache   *RateCache
	maxAge  time.Duration
	timeout time.Duration
	group   singleflight.Group
	log     zerolog.Logger
}

// NewFetcher wires a source to a cache. Zero config values take the defaults.
func NewFetcher(source RatesSource, cache *RateCache, cfg FetcherConfig, log zerolog.Logger) *Fetcher {
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DefaultMaxAge
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}
	return &Fetcher{
		source:  source,
		cache:   cache,
		maxAge:  cfg.MaxAge,
		timeout: cfg.Timeout,
		log:     log.With().Str("component", "market_data").Logger(),
	}
}

// GetIndicators returns the current snapshot. Errors are always *MarketDataError.
func (f *Fetcher) GetIndicators(ctx context.Context) (model.IndicatorSnapshot, error) {
	l, err := f.Lookup(ctx)
	if err != nil {
		return model.IndicatorSnapshot{}, err
	}
	return l.Snapshot, nil
}

// Lookup is GetIndicators with provenance.
func (f *Fetcher) Lookup(ctx context.Context) (Lookup, error) {
	if entry, ok := f.cache.fresh(f.maxAge); ok {
		return Lookup{Snapshot: entry.Snapshot, FetchedAt: entry.FetchedAt}, nil
	}

	v, err, shared := f.group.Do(indicatorsKey, func() (any, error) {
		return f.refresh(ctx)
	})
	if shared {
		f.log.Debug().Msg("Joined in-flight refresh")
	}
	if err != nil {
		return Lookup{}, err
	}
	return v.(Lookup), nil
}

// refresh runs inside the single flight. It re-checks freshness first so a caller
// that saw an expired entry just before another flight completed does not refetch.
func (f *Fetcher) refresh(ctx context.Context) (Lookup, error) {
	if entry, ok := f.cache.fresh(f.maxAge); ok {
		return Lookup{Snapshot: entry.Snapshot, FetchedAt: entry.FetchedAt}, nil
	}

	// The flight is shared, so one caller going away must not fail the others.
	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
	defer cancel()

	snapshot, err := f.fetch(fetchCtx)
	if err != nil {
		return f.fallback(err)
	}

	entry := f.cache.Put(snapshot)
	f.log.Info().
		Str("selic", snapshot.SelicDisplay).
		Str("cdi", snapshot.CDIDisplay).
		Time("reference_date", snapshot.ReferenceDate).
		Msg("Fetched indicators")

	return Lookup{Snapshot: snapshot, FetchedAt: entry.FetchedAt}, nil
}

func (f *Fetcher) fetch(ctx context.Context) (model.IndicatorSnapshot, error) {
	obs, err := f.source.FetchLatest(ctx, IndicatorQuery())
	if err != nil {
		return model.IndicatorSnapshot{}, err
	}
	return ParseIndicators(obs)
}

// fallback serves any cached entry, however old, when a refresh fails.
func (f *Fetcher) fallback(cause error) (Lookup, error) {
	entry, ok := f.cache.Get()
	if !ok {
		f.log.Error().Err(cause).Msg("Indicator refresh failed and no cached data exists")
		return Lookup{}, &MarketDataError{Kind: kindOf(cause), Err: cause}
	}

	f.log.Warn().
		Err(cause).
		Time("fetched_at", entry.FetchedAt).
		Str("cdi", entry.Snapshot.CDIDisplay).
		Msg("Indicator refresh failed, using stale cached data")

	return Lookup{Snapshot: entry.Snapshot, FetchedAt: entry.FetchedAt, Stale: true}, nil
}
