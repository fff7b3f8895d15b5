package evalcache

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libtabfunc/tabulated"
	"github.com/spf13/cast"
)

const (
	defaultTTL             = 5 * time.Minute
	defaultCleanupInterval = 10 * time.Minute
)

type Config struct {
	// TTL < 0: memoized values never expire
	TTL             time.Duration `yaml:"ttl" json:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanupInterval" json:"cleanupInterval"`
}

type Stats struct {
	Hits    int
	Misses  int
	Flushes int
}

var _ tabulated.TabulatedFunction = (*Function)(nil)

// Function memoizes FunctionValue of the wrapped function. Any successful
// mutation invalidates every memoized value.
type Function struct {
	logger l.Wrapper

	f      tabulated.TabulatedFunction
	values *cache.Cache

	stats Stats
}

// New wraps f. It returns nil when f is nil.
func New(f tabulated.TabulatedFunction, cfg *Config, logger l.Wrapper) *Function {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	if f == nil {
		logger.Error("no function to cache")

		return nil
	}

	var localCfg Config
	if cfg != nil {
		localCfg = *cfg
	}

	ttl := localCfg.TTL

	switch {
	case ttl < 0:
		ttl = cache.NoExpiration
	case ttl == 0:
		ttl = defaultTTL
	}

	if localCfg.CleanupInterval <= 0 {
		localCfg.CleanupInterval = defaultCleanupInterval
	}

	return &Function{
		logger: logger.WithFields(l.StringField(l.ClsKey, "evalCacheImpl")),
		f:      f,
		values: cache.New(ttl, localCfg.CleanupInterval),
	}
}

// Unwrap returns the wrapped function. Mutations made on it directly leave
// the memoized values stale; mutate through the wrapper.
func (impl *Function) Unwrap() tabulated.TabulatedFunction {
	return impl.f
}

func (impl *Function) Stats() Stats {
	return impl.stats
}

func (impl *Function) Len() int {
	return impl.values.ItemCount()
}

func (impl *Function) flushOn(err error) error {
	if err != nil {
		return err
	}

	if n := impl.values.ItemCount(); n > 0 {
		impl.logger.Debugf("flush %d memoized values", n)
	}

	impl.values.Flush()
	impl.stats.Flushes++

	return nil
}

func (impl *Function) PointCount() int {
	return impl.f.PointCount()
}

func (impl *Function) PointX(index int) (float64, error) {
	return impl.f.PointX(index)
}

func (impl *Function) PointY(index int) (float64, error) {
	return impl.f.PointY(index)
}

func (impl *Function) Point(index int) (tabulated.Point, error) {
	return impl.f.Point(index)
}

func (impl *Function) SetPointX(index int, x float64) error {
	return impl.flushOn(impl.f.SetPointX(index, x))
}

func (impl *Function) SetPointY(index int, y float64) error {
	return impl.flushOn(impl.f.SetPointY(index, y))
}

func (impl *Function) SetPoint(index int, p tabulated.Point) error {
	return impl.flushOn(impl.f.SetPoint(index, p))
}

func (impl *Function) AddPoint(p tabulated.Point) error {
	return impl.flushOn(impl.f.AddPoint(p))
}

func (impl *Function) DeletePoint(index int) error {
	return impl.flushOn(impl.f.DeletePoint(index))
}

func (impl *Function) LeftBound() float64 {
	return impl.f.LeftBound()
}

func (impl *Function) RightBound() float64 {
	return impl.f.RightBound()
}

func (impl *Function) FunctionValue(x float64) float64 {
	key := cast.ToString(x)

	if i, ok := impl.values.Get(key); ok {
		if y, ok := i.(float64); ok {
			impl.stats.Hits++

			return y
		}
	}

	impl.stats.Misses++

	y := impl.f.FunctionValue(x)
	impl.values.Set(key, y, cache.DefaultExpiration)

	impl.logger.Debugf("memoize f(%s) = %v", key, y)

	return y
}
