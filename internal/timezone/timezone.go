package timezone

import (
	"sync"
	"sync/atomic"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

var (
	fallback atomic.Value // string
	cache    sync.Map     // name -> *time.Location
)

func init() {
	fallback.Store(DefaultTimezone)
}

// SetDefault changes the zone used for tenants without a valid timezone.
// Invalid names are ignored.
func SetDefault(tz string) {
	if IsValid(tz) {
		fallback.Store(tz)
	}
}

func Default() string {
	return fallback.Load().(string)
}

// load resolves an IANA name once; later lookups hit the cache.
func load(tz string) (*time.Location, bool) {
	if tz == "" {
		return nil, false
	}
	if loc, ok := cache.Load(tz); ok {
		return loc.(*time.Location), true
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, false
	}
	cache.Store(tz, loc)
	return loc, true
}

func IsValid(tz string) bool {
	_, ok := load(tz)
	return ok
}

// Location resolves tz, falling back to the default zone and then UTC.
func Location(tz string) *time.Location {
	if loc, ok := load(tz); ok {
		return loc
	}
	if loc, ok := load(Default()); ok {
		return loc
	}
	return time.UTC
}

func Now() time.Time {
	return time.Now().In(Location(""))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// In converts t to the tenant zone.
func In(t time.Time, tz string) time.Time {
	return t.In(Location(tz))
}
