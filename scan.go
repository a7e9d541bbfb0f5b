package wifi

import (
	"bytes"
	"math"

	"log/slog"

	"github.com/ALLTERCO/wifi/esphal"
)

// AuthMode is the generic authentication mode of a discovered network.
// The zero value is AuthOpen; vendor modes without a generic mapping are
// left at the zero value.
type AuthMode uint8

const (
	AuthOpen AuthMode = iota
	AuthWEP
	AuthWPAPSK
	AuthWPA2PSK
	AuthWPAWPA2PSK
)

// Active scan dwell window per channel, milliseconds. Fixed at the vendor
// level; this layer has no scan timeout of its own.
const (
	scanActiveMinMs = 100
	scanActiveMaxMs = 150
)

// ScanResult is one normalized discovered network. Produced once per scan
// and handed off to the OnScan callback, which owns the result slice.
type ScanResult struct {
	// SSID is truncated to fit and always NUL-terminated.
	SSID    [33]byte
	BSSID   [6]byte
	Channel uint8
	// RSSI in dBm, never positive. 0 means no reading.
	RSSI     int8
	AuthMode AuthMode
}

// SSIDString returns the SSID up to its NUL terminator.
func (r *ScanResult) SSIDString() string {
	i := bytes.IndexByte(r.SSID[:], 0)
	if i < 0 {
		i = len(r.SSID)
	}
	return string(r.SSID[:i])
}

// StartScan initiates an active scan. Scanning requires the station
// interface: in AP-only mode the radio is switched to AP+STA first.
// Completion is reported asynchronously through the OnScan callback.
func (d *Device) StartScan() error {
	d.lock()
	defer d.unlock()
	if err := d.addMode(esphal.OpModeStation); err != nil {
		return err
	}
	cfg := esphal.ScanConfig{
		Type:      esphal.ScanTypeActive,
		ActiveMin: scanActiveMinMs,
		ActiveMax: scanActiveMaxMs,
	}
	return d.drv.Scan(&cfg, d.handleScanDone)
}

// handleScanDone marshals the vendor's linked BSS records into a normalized
// result slice and delivers it to the OnScan callback. count -1 signals
// failure; 0 signals a successful scan that found nothing. The list is
// walked twice: once to size the slice, once to copy.
func (d *Device) handleScanDone(status esphal.ScanStatus, bss *esphal.BSSInfo) {
	if status != esphal.ScanOK {
		d.logerr("scan failed", slog.Uint64("status", uint64(status)))
		d.deliverScan(-1, nil)
		return
	}
	d.lock()
	n := 0
	for p := bss; p != nil; p = p.Next {
		n++
	}
	if n == 0 {
		d.unlock()
		d.deliverScan(0, nil)
		return
	}
	results := make([]ScanResult, n)
	i := 0
	for p := bss; p != nil; p = p.Next {
		r := &results[i]
		copy(r.SSID[:len(r.SSID)-1], p.SSID[:])
		r.BSSID = p.BSSID
		r.Channel = p.Channel
		r.RSSI = clamp(p.RSSI, math.MinInt8, 0)
		switch p.AuthMode {
		case esphal.AuthModeOpen:
			r.AuthMode = AuthOpen
		case esphal.AuthModeWEP:
			r.AuthMode = AuthWEP
		case esphal.AuthModeWPAPSK:
			r.AuthMode = AuthWPAPSK
		case esphal.AuthModeWPA2PSK:
			r.AuthMode = AuthWPA2PSK
		case esphal.AuthModeWPAWPA2PSK:
			r.AuthMode = AuthWPAWPA2PSK
		case esphal.AuthModeMax:
			// Vendor sentinel, leave the zero value.
		}
		i++
	}
	d.unlock()
	d.deliverScan(n, results)
}

func (d *Device) deliverScan(n int, results []ScanResult) {
	if d.onScan != nil {
		d.onScan(n, results)
	}
}
