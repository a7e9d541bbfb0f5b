package wifi

import (
	"log/slog"

	"github.com/ALLTERCO/wifi/esphal"
)

// EventKind tags a normalized WiFi event. The zero value marks "no event"
// and is never delivered.
type EventKind uint8

const (
	// EventStationDisconnected: station lost its association. Reason
	// carries the 802.11 reason code.
	EventStationDisconnected EventKind = iota + 1
	// EventStationConnected: station associated. BSSID and Channel
	// identify the access point.
	EventStationConnected
	// EventStationIPAcquired: station interface obtained an IP address.
	EventStationIPAcquired
	// EventAPClientConnected: a client identified by MAC joined our AP.
	EventAPClientConnected
	// EventAPClientDisconnected: a client identified by MAC left our AP.
	EventAPClientDisconnected
)

func (k EventKind) String() (s string) {
	switch k {
	case EventStationDisconnected:
		s = "sta-disconnected"
	case EventStationConnected:
		s = "sta-connected"
	case EventStationIPAcquired:
		s = "sta-ip-acquired"
	case EventAPClientConnected:
		s = "ap-client-connected"
	case EventAPClientDisconnected:
		s = "ap-client-disconnected"
	default:
		s = "???"
	}
	return s
}

// Event is one normalized WiFi event. Only the payload fields matching
// Kind are meaningful. Events are constructed per vendor callback, handed
// to the OnEvent callback once and then discarded.
type Event struct {
	Kind EventKind
	// Reason is the 802.11 disassociation reason code
	// (EventStationDisconnected).
	Reason uint8
	// BSSID and Channel identify the joined AP (EventStationConnected).
	BSSID   [6]byte
	Channel uint8
	// MAC identifies an AP client (EventAPClientConnected/Disconnected).
	MAC [6]byte
}

// handleEvent translates one vendor link event into at most one normalized
// Event. It is the single callback registered with the vendor driver and
// runs synchronously in the driver's callback context; vendor event kinds
// with no generic equivalent are matched and dropped.
func (d *Device) handleEvent(vev *esphal.Event) {
	var ev Event
	switch vev.ID {
	case esphal.EvStationDisconnected:
		ev.Kind = EventStationDisconnected
		ev.Reason = vev.Disconnected.Reason
	case esphal.EvStationConnected:
		ev.Kind = EventStationConnected
		ev.BSSID = vev.Connected.BSSID
		ev.Channel = vev.Connected.Channel
	case esphal.EvStationGotIP:
		ev.Kind = EventStationIPAcquired
	case esphal.EvSoftAPStationConnected:
		ev.Kind = EventAPClientConnected
		ev.MAC = vev.StaConnected.MAC
	case esphal.EvSoftAPStationDisconnected:
		ev.Kind = EventAPClientDisconnected
		ev.MAC = vev.StaLeft.MAC
	case esphal.EvStationAuthModeChange:
		// Guard against a rogue AP stripping encryption (CVE-2020-12638):
		// a transition from any secured mode to open auth forces an
		// immediate disconnect and emits no event.
		ac := vev.AuthChange
		if ac.Old != esphal.AuthModeOpen && ac.New == esphal.AuthModeOpen {
			d.logerr("auth downgrade detected, disconnecting",
				slog.String("old", ac.Old.String()),
				slog.String("new", ac.New.String()),
			)
			d.lock()
			d.drv.StationDisconnect()
			d.unlock()
		}
	case esphal.EvSoftAPProbeRequest, esphal.EvStationDHCPTimeout,
		esphal.EvOpModeChanged, esphal.EvSoftAPDistributeStaIP, esphal.EvMax:
		// No generic equivalent.
	}

	if ev.Kind != 0 && d.onEvent != nil {
		d.onEvent(ev)
	}
}
