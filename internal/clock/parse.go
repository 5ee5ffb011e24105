package clock

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// FractionalDigits is the number of fractional digits an epoch stamp
// must carry for exact microsecond conversion.
const FractionalDigits = 6

// ErrBadStamp is returned when an epoch stamp cannot be converted.
var ErrBadStamp = errors.New("malformed epoch stamp")

// ParseMicros converts an epoch timestamp of the form "SECONDS.UUUUUU"
// (six fractional digits, as produced by clock_gettime-style sources)
// into integer microseconds. The conversion is lexical: the decimal
// point is removed and both halves are parsed explicitly in base 10,
// so values with leading zeros are never misread as octal and no
// floating-point rounding is involved.
func ParseMicros(stamp string) (int64, error) {
	sec, frac, ok := strings.Cut(stamp, ".")
	if !ok {
		return 0, errors.Wrapf(ErrBadStamp, "no decimal point in %q", stamp)
	}

	if len(frac) != FractionalDigits {
		return 0, errors.Wrapf(ErrBadStamp, "want %d fractional digits in %q", FractionalDigits, stamp)
	}

	secs, err := strconv.ParseInt(sec, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrBadStamp, "seconds part of %q", stamp)
	}

	micros, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrBadStamp, "fractional part of %q", stamp)
	}

	return secs*1_000_000 + micros, nil
}

// StampSampler replays a fixed sequence of textual epoch stamps. It
// exists for deterministic timing in tests; the last stamp repeats
// once the sequence is exhausted.
type StampSampler struct {
	samples []int64
	next    int
}

// NewStampSampler parses the given stamps up front so a bad stamp
// fails at construction, not mid-measurement.
func NewStampSampler(stamps ...string) (*StampSampler, error) {
	if len(stamps) == 0 {
		return nil, errors.Wrap(ErrBadStamp, "no stamps given")
	}

	samples := make([]int64, len(stamps))

	for i, stamp := range stamps {
		us, err := ParseMicros(stamp)
		if err != nil {
			return nil, err
		}

		samples[i] = us
	}

	return &StampSampler{samples: samples}, nil
}

// NowMicros returns the next stamp in the sequence.
func (s *StampSampler) NowMicros() int64 {
	us := s.samples[s.next]
	if s.next < len(s.samples)-1 {
		s.next++
	}

	return us
}
