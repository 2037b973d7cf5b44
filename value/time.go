package value

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/outofforest/tribles/types"
)

var (
	minTime = time.Unix(0, math.MinInt64)
	maxTime = time.Unix(0, math.MaxInt64)
)

// Time stores point in time as nanoseconds since unix epoch.
type Time struct{}

// Encode encodes time. Time must be representable as int64 number of nanoseconds.
func (Time) Encode(t time.Time) (types.RawValue, error) {
	if t.Before(minTime) || t.After(maxTime) {
		return types.RawValue{}, errors.Wrapf(ErrMalformed, "time %s does not fit in 64 bits of nanoseconds", t)
	}
	return UInt64{}.Encode(uint64(t.UnixNano()))
}

// Decode decodes time in UTC.
func (Time) Decode(v types.RawValue) (time.Time, error) {
	n, err := UInt64{}.Decode(v)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, int64(n)).UTC(), nil
}
