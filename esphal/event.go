package esphal

// EventID tags a vendor link event.
type EventID uint8

// Vendor event identifiers. Only a subset maps to the generic event
// vocabulary of the device layer; the remainder are listed so that event
// dispatch can match them exhaustively.
const (
	// Station associated with an access point.
	EvStationConnected EventID = iota
	// Station lost association; payload carries the 802.11 reason code.
	EvStationDisconnected
	// The associated AP changed its advertised authentication mode.
	EvStationAuthModeChange
	// Station interface obtained an IP address.
	EvStationGotIP
	// Station DHCP client gave up waiting for a lease.
	EvStationDHCPTimeout
	// A client joined our access point.
	EvSoftAPStationConnected
	// A client left our access point.
	EvSoftAPStationDisconnected
	// A probe request was received by the access point.
	EvSoftAPProbeRequest
	// Radio operating mode changed.
	EvOpModeChanged
	// SoftAP DHCP server assigned an address to a client.
	EvSoftAPDistributeStaIP
	// EvMax is the vendor's terminal sentinel, not a real event.
	EvMax
)

// Event is one vendor link event: an identifier plus a payload union of
// which only the arm matching ID is meaningful.
type Event struct {
	ID           EventID
	Connected    EvConnectedInfo
	Disconnected EvDisconnectedInfo
	AuthChange   EvAuthChangeInfo
	StaConnected EvStaInfo
	StaLeft      EvStaInfo
}

// EvConnectedInfo describes the access point a station associated with.
type EvConnectedInfo struct {
	BSSID   [6]byte
	Channel uint8
}

// EvDisconnectedInfo carries the 802.11 disassociation reason code.
type EvDisconnectedInfo struct {
	Reason uint8
}

// EvAuthChangeInfo reports an AP-side authentication mode transition.
type EvAuthChangeInfo struct {
	Old AuthMode
	New AuthMode
}

// EvStaInfo identifies a client of our access point.
type EvStaInfo struct {
	MAC [6]byte
}
