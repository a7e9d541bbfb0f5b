// package esphal defines the ESP WiFi radio HAL: vendor enumerations,
// configuration records and the capability interface the device-control
// layer is written against.
package esphal

// OpMode is the radio operating mode. Station and SoftAP may be active
// simultaneously as OpModeStationSoftAP; there is no other composition.
type OpMode uint8

const (
	OpModeNull OpMode = iota
	OpModeStation
	OpModeSoftAP
	OpModeStationSoftAP
)

func (m OpMode) String() (s string) {
	switch m {
	case OpModeNull:
		s = "disabled"
	case OpModeStation:
		s = "STA"
	case OpModeSoftAP:
		s = "AP"
	case OpModeStationSoftAP:
		s = "AP+STA"
	default:
		s = "???"
	}
	return s
}

// Interface selects one of the radio's two network interfaces.
type Interface uint8

const (
	IfaceStation Interface = 0
	IfaceSoftAP  Interface = 1
)

// AuthMode is the vendor authentication mode enumeration. AuthModeMax is
// the vendor's invalid/sentinel value and never maps to a usable mode.
type AuthMode uint8

const (
	AuthModeOpen AuthMode = iota
	AuthModeWEP
	AuthModeWPAPSK
	AuthModeWPA2PSK
	AuthModeWPAWPA2PSK
	AuthModeMax
)

func (a AuthMode) String() (s string) {
	switch a {
	case AuthModeOpen:
		s = "open"
	case AuthModeWEP:
		s = "WEP"
	case AuthModeWPAPSK:
		s = "WPA-PSK"
	case AuthModeWPA2PSK:
		s = "WPA2-PSK"
	case AuthModeWPAWPA2PSK:
		s = "WPA/WPA2-PSK"
	default:
		s = "???"
	}
	return s
}

// SleepType is the radio modem sleep policy.
type SleepType uint8

const (
	SleepNone SleepType = iota
	SleepLight
	SleepModem
)

// RateBand selects the PHY rate family a rate limit applies to.
type RateBand uint8

const (
	RateBand11B RateBand = iota
	RateBand11G
	RateBand11N
)

// Per-band PHY rate indices, fastest first. The *Max/*Min defaults below
// leave the full rate range available when no limit is configured.
const (
	Rate11B11M uint8 = iota
	Rate11B5M
	Rate11B2M
	Rate11B1M
)

const (
	Rate11G54M uint8 = iota
	Rate11G48M
	Rate11G36M
	Rate11G24M
	Rate11G18M
	Rate11G12M
	Rate11G9M
	Rate11G6M
	Rate11GB5M
	Rate11GB2M
	Rate11GB1M
)

const (
	Rate11NMCS7S uint8 = iota
	Rate11NMCS7
	Rate11NMCS6
	Rate11NMCS5
	Rate11NMCS4
	Rate11NMCS3
	Rate11NMCS2
	Rate11NMCS1
	Rate11NMCS0
	Rate11NB5M
	Rate11NB2M
	Rate11NB1M
)

// Rate limit mask bits for SetRateLimitMask.
const (
	LimitMaskStation uint8 = 1 << 0
	LimitMaskSoftAP  uint8 = 1 << 1
)

// ScanStatus is the vendor completion status delivered to a scan callback.
type ScanStatus uint8

const (
	ScanOK ScanStatus = iota
	ScanFail
	ScanPending
	ScanBusy
	ScanCancel
)

// ScanType selects active (probing) or passive (listen-only) scanning.
type ScanType uint8

const (
	ScanTypeActive ScanType = iota
	ScanTypePassive
)

// ScanConfig carries the vendor-level scan time window in milliseconds.
// The window is supplied by the caller, not managed by the radio layer.
type ScanConfig struct {
	Type      ScanType
	ActiveMin uint32
	ActiveMax uint32
}

// BSSInfo is one discovered basic service set as reported by the radio.
// Results arrive as a singly linked list owned by the vendor driver and
// valid only for the duration of the scan callback.
type BSSInfo struct {
	Next     *BSSInfo
	BSSID    [6]byte
	SSID     [32]byte
	Channel  uint8
	RSSI     int8
	AuthMode AuthMode
}

// StationConfig is the vendor station configuration record.
type StationConfig struct {
	SSID     [32]byte
	Password [64]byte
	BSSIDSet bool
	BSSID    [6]byte
}

// SoftAPConfig is the vendor access point configuration record.
type SoftAPConfig struct {
	SSID           [32]byte
	SSIDLen        uint8
	Password       [64]byte
	Channel        uint8
	AuthMode       AuthMode
	Hidden         bool
	MaxConnections uint8
	BeaconInterval uint16 // milliseconds
}

// IPInfo holds one interface's IPv4 addressing as three vendor 32-bit
// values in network byte order.
type IPInfo struct {
	IP      uint32
	Netmask uint32
	Gateway uint32
}

// DHCPLease is the address pool handed out by the SoftAP DHCP server.
type DHCPLease struct {
	Enable bool
	Start  uint32
	End    uint32
}

// Driver is the opaque vendor radio capability set. Implementations wrap
// the real vendor SDK; tests substitute a recording double. All calls are
// synchronous and blocking; asynchronous activity is limited to the event
// callback registered with SetEventCallback and the scan completion
// callback passed to Scan.
type Driver interface {
	// SetOpMode switches the radio's current operating mode. The radio
	// may be left in an indeterminate state when an error is returned.
	SetOpMode(mode OpMode) error
	GetOpMode() (OpMode, error)
	SetSleepType(st SleepType) error

	StationConnect() error
	StationDisconnect() error
	StationSetConfig(cfg *StationConfig) error
	StationSetAutoConnect(enable bool) error
	StationSetReconnectPolicy(enable bool) error
	StationSetHostname(name string) error
	// StationRSSI reports received signal strength in dBm, or a
	// non-negative value when no reading is available.
	StationRSSI() int
	StationDHCPClientStop() error

	SoftAPSetConfig(cfg *SoftAPConfig) error
	SoftAPDHCPServerStart() error
	SoftAPDHCPServerStop() error
	SoftAPSetDHCPLease(lease *DHCPLease) error
	// SoftAPSetDHCPOfferRouter controls whether DHCP offers advertise
	// this device as the clients' default router.
	SoftAPSetDHCPOfferRouter(offer bool) error

	SetIPInfo(itf Interface, info *IPInfo) error
	GetIPInfo(itf Interface) (IPInfo, error)
	MACAddress(itf Interface) ([6]byte, error)

	SetRateLimit(band RateBand, itf Interface, max, min uint8) error
	GetRateLimitMask() uint8
	SetRateLimitMask(mask uint8) error

	// Scan starts an active scan. done is invoked exactly once from the
	// driver's callback context with the completion status and the head
	// of the discovered BSS list (nil when none were found).
	Scan(cfg *ScanConfig, done func(status ScanStatus, bss *BSSInfo)) error

	// SetEventCallback registers the single global link event callback.
	SetEventCallback(cb func(ev *Event))

	// DefaultDNS returns the station interface's primary resolver
	// address, ok=false when none is configured.
	DefaultDNS() (addr uint32, ok bool)
}

// Enterprise is the optional WPA2-enterprise (802.1X) capability extension.
// Drivers lacking enterprise support simply do not implement it.
type Enterprise interface {
	SetEnterpriseUsername(user []byte) error
	SetEnterpriseIdentity(identity []byte) error
	SetEnterprisePassword(pass []byte) error
	ClearEnterprisePassword() error
	SetEnterpriseCACert(pem []byte) error
	ClearEnterpriseCACert() error
	SetEnterpriseCertKey(certPEM, keyPEM []byte) error
	ClearEnterpriseNewPassword() error
	SetEnterpriseDisableTimeCheck(disable bool) error
	SetEnterpriseEnable(enable bool) error
}
