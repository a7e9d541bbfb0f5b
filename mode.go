package wifi

import (
	"log/slog"

	"github.com/ALLTERCO/wifi/esphal"
)

// The radio exposes four operating modes ordered by capability inclusion:
// disabled, station, access point, and both at once. addMode and removeMode
// compute the smallest transition satisfying a capability request and apply
// it through the single setMode primitive; modes are never composed
// incrementally on the radio side.
//
// Callers must hold d.mu.

// addMode ensures the capability of mode (station or access point) is part
// of the current operating mode, switching to the combined mode when the
// other single mode is already active. No-op when already satisfied.
func (d *Device) addMode(mode esphal.OpMode) error {
	if d.mode == mode || d.mode == esphal.OpModeStationSoftAP {
		return nil
	}

	if (d.mode == esphal.OpModeSoftAP && mode == esphal.OpModeStation) ||
		(d.mode == esphal.OpModeStation && mode == esphal.OpModeSoftAP) {
		mode = esphal.OpModeStationSoftAP
	}

	return d.setMode(mode)
}

// removeMode drops the capability of mode from the current operating mode.
// Removing a capability that is not active is a no-op; removing the sole
// active capability (or the combined mode) disables the radio; removing one
// half of the combined mode leaves the survivor.
func (d *Device) removeMode(mode esphal.OpMode) error {
	if (mode == esphal.OpModeStation && d.mode == esphal.OpModeSoftAP) ||
		(mode == esphal.OpModeSoftAP && d.mode == esphal.OpModeStation) ||
		d.mode == esphal.OpModeNull {
		// Nothing to do.
		return nil
	}
	switch {
	case mode == esphal.OpModeStationSoftAP,
		mode == esphal.OpModeStation && d.mode == esphal.OpModeStation,
		mode == esphal.OpModeSoftAP && d.mode == esphal.OpModeSoftAP:
		mode = esphal.OpModeNull
	case mode == esphal.OpModeStation:
		mode = esphal.OpModeSoftAP
	default:
		mode = esphal.OpModeStation
	}
	return d.setMode(mode)
}

// setMode is the single mode-transition primitive. The cached mode is
// updated only when the vendor call succeeds; on failure the radio may be
// left in a state that no longer matches the cache, and the caller's
// recovery path is a full re-apply.
func (d *Device) setMode(mode esphal.OpMode) error {
	d.info("wifi mode", slog.String("mode", mode.String()))
	err := d.drv.SetOpMode(mode)
	if err != nil {
		d.logerr("failed to set wifi mode",
			slog.String("mode", mode.String()),
			slog.String("cached", d.mode.String()),
			slog.Any("err", err),
		)
		return err
	}
	d.mode = mode

	if mode == esphal.OpModeStation {
		// Modem sleep silently drops the station link on this radio
		// (vendor SDK issue #119, disconnect events get lost); keep it
		// off while in pure station mode.
		d.drv.SetSleepType(esphal.SleepNone)
	} else {
		// When the AP is active modem sleep is not active anyway.
	}
	return nil
}

// Mode returns the cached operating mode. After a failed transition the
// cache reflects the last successful SetOpMode, which may differ from the
// radio's actual state.
func (d *Device) Mode() esphal.OpMode {
	d.lock()
	defer d.unlock()
	return d.mode
}
