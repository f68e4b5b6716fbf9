package pk2

import "time"

// filetimeEpochOffset is the number of 100-ns ticks between the Windows
// FILETIME epoch (1601-01-01) and the Unix epoch (1970-01-01).
const filetimeEpochOffset = 116_444_736_000_000_000

// filetime mirrors the on-disk Windows FILETIME layout: a 64-bit tick count
// since 1601-01-01 split into low/high 32-bit halves, little-endian.
type filetime struct {
	low  uint32
	high uint32
}

func filetimeNow() filetime { return newFiletime(time.Now()) }

func newFiletime(t time.Time) filetime {
	ticks := uint64(t.UnixNano())/100 + filetimeEpochOffset
	return filetime{low: uint32(ticks), high: uint32(ticks >> 32)}
}

// Time converts the filetime to a time.Time. It returns false if the ticks
// value underflows the Unix epoch (ticks < filetimeEpochOffset) — the
// archive format has no guard against such values, so the library surfaces
// "no meaningful time" instead of panicking or wrapping around.
func (f filetime) Time() (time.Time, bool) {
	ticks := uint64(f.high)<<32 | uint64(f.low)
	if ticks < filetimeEpochOffset {
		return time.Time{}, false
	}
	nanos := (ticks - filetimeEpochOffset) * 100
	return time.Unix(0, int64(nanos)).UTC(), true
}

func (f filetime) isZero() bool { return f.low == 0 && f.high == 0 }
