package wifi

import (
	"log/slog"

	"github.com/ALLTERCO/wifi/esphal"
)

// RateNone leaves a band's transmit rate unrestricted.
const RateNone int32 = -1

// RateLimits restrict the station's transmit PHY rates per band. Each
// limit packs the fastest and slowest allowed rate index as max<<8|min;
// RateNone disables limiting for that band.
type RateLimits struct {
	Limit11B int32
	Limit11G int32
	Limit11N int32
}

// applyRateLimits pushes all three band limits to the radio. The station
// rate-limit mask bit is set only when at least one band carries a concrete
// limit and every band was accepted by the radio; otherwise it is cleared.
// A mask write failure is logged but does not abort setup.
// Caller must hold d.mu.
func (d *Device) applyRateLimits() {
	enable, valid := false, true
	apply := func(band esphal.RateBand, name string, limit int32, defMax, defMin uint8) {
		max, min := defMax, defMin
		if limit != RateNone {
			max = uint8(limit >> 8)
			min = uint8(limit)
			enable = true
		}
		d.debug("set rate limit",
			slog.String("band", name),
			slog.Uint64("max", uint64(max)),
			slog.Uint64("min", uint64(min)),
		)
		if err := d.drv.SetRateLimit(band, esphal.IfaceStation, max, min); err != nil {
			d.logerr("invalid rate limit",
				slog.String("band", name),
				slog.Uint64("max", uint64(max)),
				slog.Uint64("min", uint64(min)),
				slog.Any("err", err),
			)
			valid = false
		}
	}
	apply(esphal.RateBand11B, "11b", d.rates.Limit11B, esphal.Rate11B11M, esphal.Rate11B1M)
	apply(esphal.RateBand11G, "11g", d.rates.Limit11G, esphal.Rate11G54M, esphal.Rate11GB1M)
	apply(esphal.RateBand11N, "11n", d.rates.Limit11N, esphal.Rate11NMCS7S, esphal.Rate11NB1M)

	mask := d.drv.GetRateLimitMask()
	if enable && valid {
		mask |= esphal.LimitMaskStation
	} else {
		mask &^= esphal.LimitMaskStation
	}
	if err := d.drv.SetRateLimitMask(mask); err != nil {
		d.warn("failed to set rate limit mask", slog.Any("err", err))
	}
}
