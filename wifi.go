// Package wifi is the WiFi device-control layer: it maps generic radio
// operations (configure station, configure access point, connect, scan,
// query addressing) onto an injected vendor radio driver and translates
// vendor link events into a small normalized event vocabulary.
//
// The layer owns the radio operating-mode composition (station and access
// point may coexist) and nothing else: persistent configuration, the vendor
// radio itself, reconnection policy and the IP stack are all external
// collaborators.
package wifi

import (
	"encoding/hex"
	"errors"
	"math"
	"net/netip"
	"os"
	"strings"
	"sync"

	"log/slog"

	"github.com/ALLTERCO/wifi/esphal"
	"github.com/ALLTERCO/wifi/internal/netutil"
	"golang.org/x/exp/constraints"
)

var (
	errNoDriver      = errors.New("wifi: nil vendor driver")
	errInvalidBSSID  = errors.New("wifi: invalid BSSID")
	errNoIPInfo      = errors.New("wifi: interface has no IP configuration")
	errMissingAPAddr = errors.New("wifi: AP config missing IP or netmask")
)

// StationConfig describes a station (client) setup request. It arrives
// already parsed from the configuration layer, is consumed by one
// StationSetup call and not retained.
type StationConfig struct {
	// Enable false tears the station capability down; all other fields
	// are then ignored.
	Enable bool
	SSID   string
	// Pass is the WPA passphrase, or the 802.1X password when enterprise
	// credentials are in use. Empty means open auth.
	Pass string
	// BSSID optionally pins the AP as six colon-separated hex octets.
	BSSID string
	// Static addressing, used when both IP and Netmask are valid;
	// otherwise the DHCP client runs. Gateway is optional.
	IP      netip.Addr
	Netmask netip.Addr
	Gateway netip.Addr
	// Enterprise (802.1X) credentials. Enterprise auth is selected when
	// User or Cert is set. CACert, Cert and Key are file paths read
	// through the file collaborator.
	User         string
	AnonIdentity string
	CACert       string
	Cert         string
	Key          string
	// DHCPHostname overrides the device-identifier hostname.
	DHCPHostname string
}

func (cfg *StationConfig) hasEnterprise() bool {
	return cfg.Cert != "" || cfg.User != ""
}

// APConfig describes an access point setup request. Same lifecycle as
// StationConfig.
type APConfig struct {
	Enable bool
	// SSID may contain '?' placeholders which expand to the tail of the
	// AP MAC address hex digits for device-unique naming.
	SSID string
	// Pass empty selects open authentication, otherwise WPA2-PSK.
	Pass           string
	Channel        uint8
	Hidden         bool
	MaxConnections uint8
	// The AP's own addressing and the DHCP pool handed to clients.
	IP        netip.Addr
	Netmask   netip.Addr
	Gateway   netip.Addr
	DHCPStart netip.Addr
	DHCPEnd   netip.Addr
}

// IPInfo is one interface's IPv4 addressing.
type IPInfo struct {
	IP      netip.Addr
	Netmask netip.Addr
	Gateway netip.Addr
}

// Config wires the Device to its collaborators.
type Config struct {
	// Driver is the vendor radio implementation. Required.
	Driver esphal.Driver
	// Logger may be nil for no logging.
	Logger *slog.Logger
	// RateLimits is the station transmit rate limiting policy, applied on
	// every setup call.
	RateLimits RateLimits
	// DeviceID returns a stable device identifier, used as the DHCP
	// hostname fallback. May be nil.
	DeviceID func() string
	// ReadFile loads enterprise certificate and key material. Defaults
	// to os.ReadFile.
	ReadFile func(name string) ([]byte, error)
	// OnEvent receives normalized link events, one call per qualifying
	// vendor event.
	OnEvent func(ev Event)
	// OnScan receives scan completions: n is -1 on failure, 0 for an
	// empty successful scan. Ownership of results passes to the callback.
	OnScan func(n int, results []ScanResult)
}

// Device is the WiFi control surface over one vendor radio. All methods
// serialize on an internal mutex; the vendor driver must not invoke its
// callbacks synchronously from within a Driver method call.
type Device struct {
	mu       sync.Mutex
	drv      esphal.Driver
	logger   *slog.Logger
	mode     esphal.OpMode
	rates    RateLimits
	deviceID func() string
	readFile func(name string) ([]byte, error)
	onEvent  func(Event)
	onScan   func(n int, results []ScanResult)
}

func New() *Device {
	return &Device{}
}

// Init wires the device to the vendor driver, registers the event callback
// and forces the radio into the disabled mode.
func (d *Device) Init(cfg Config) error {
	if cfg.Driver == nil {
		return errNoDriver
	}
	d.lock()
	defer d.unlock()
	d.drv = cfg.Driver
	d.logger = cfg.Logger
	d.rates = cfg.RateLimits
	d.deviceID = cfg.DeviceID
	d.readFile = cfg.ReadFile
	if d.readFile == nil {
		d.readFile = os.ReadFile
	}
	d.onEvent = cfg.OnEvent
	d.onScan = cfg.OnScan
	d.drv.SetEventCallback(d.handleEvent)
	return d.setMode(esphal.OpModeNull)
}

// Deinit disables the radio.
func (d *Device) Deinit() error {
	d.lock()
	defer d.unlock()
	return d.setMode(esphal.OpModeNull)
}

// StationSetup applies a station configuration. With cfg.Enable false it
// only removes the station capability. Any vendor failure aborts the
// sequence immediately; partially applied state is not rolled back and the
// expected recovery is another setup call.
func (d *Device) StationSetup(cfg *StationConfig) error {
	d.lock()
	defer d.unlock()

	if !cfg.Enable {
		return d.removeMode(esphal.OpModeStation)
	}

	// Start from a clean association state.
	d.drv.StationDisconnect()

	d.applyRateLimits()

	if err := d.addMode(esphal.OpModeStation); err != nil {
		return err
	}

	var sta esphal.StationConfig
	if cfg.BSSID != "" {
		mac, err := netutil.ParseBSSID(cfg.BSSID)
		if err != nil {
			d.logerr("sta: invalid BSSID", slog.String("bssid", cfg.BSSID))
			return errInvalidBSSID
		}
		sta.BSSID = mac
		sta.BSSIDSet = true
	}
	copy(sta.SSID[:], cfg.SSID)

	if cfg.IP.IsValid() && cfg.Netmask.IsValid() {
		info, err := ipInfoFromAddrs(cfg.IP, cfg.Netmask, cfg.Gateway)
		if err != nil {
			return err
		}
		d.drv.StationDHCPClientStop()
		if err := d.drv.SetIPInfo(esphal.IfaceStation, &info); err != nil {
			d.logerr("sta: failed to set IP config", slog.Any("err", err))
			return err
		}
		d.info("sta static IP",
			slog.String("ip", cfg.IP.String()),
			slog.String("netmask", cfg.Netmask.String()),
			slog.String("gw", addrString(cfg.Gateway)),
		)
	}

	if !cfg.hasEnterprise() && cfg.Pass != "" {
		copy(sta.Password[:], cfg.Pass)
	}

	if err := d.drv.StationSetConfig(&sta); err != nil {
		d.logerr("sta: failed to set config", slog.Any("err", err))
		return err
	}

	// Reconnection is owned by the layer above this one.
	d.drv.StationSetAutoConnect(false)
	d.drv.StationSetReconnectPolicy(false)

	if err := d.setupEnterprise(cfg); err != nil {
		return err
	}

	host := cfg.DHCPHostname
	if host == "" && d.deviceID != nil {
		host = d.deviceID()
	}
	if host != "" {
		if err := d.drv.StationSetHostname(host); err != nil {
			d.logerr("sta: failed to set hostname",
				slog.String("hostname", host), slog.Any("err", err))
			return err
		}
	}
	return nil
}

// APSetup applies an access point configuration. With cfg.Enable false it
// only removes the AP capability. Failure semantics match StationSetup.
func (d *Device) APSetup(cfg *APConfig) error {
	d.lock()
	defer d.unlock()

	if !cfg.Enable {
		return d.removeMode(esphal.OpModeSoftAP)
	}

	d.applyRateLimits()

	if err := d.addMode(esphal.OpModeSoftAP); err != nil {
		return err
	}

	ssid := cfg.SSID
	if strings.ContainsRune(ssid, '?') {
		mac, err := d.drv.MACAddress(esphal.IfaceSoftAP)
		if err != nil {
			d.logerr("ap: failed to read MAC for SSID expansion", slog.Any("err", err))
			return err
		}
		ssid = expandPlaceholders(ssid, mac)
	}

	var ap esphal.SoftAPConfig
	ap.SSIDLen = uint8(copy(ap.SSID[:], ssid))
	if cfg.Pass != "" {
		copy(ap.Password[:], cfg.Pass)
		ap.AuthMode = esphal.AuthModeWPA2PSK
	} else {
		ap.AuthMode = esphal.AuthModeOpen
	}
	ap.Channel = cfg.Channel
	ap.Hidden = cfg.Hidden
	ap.MaxConnections = cfg.MaxConnections
	ap.BeaconInterval = 100 // ms
	d.info("ap config", slog.String("ssid", ssid), slog.Uint64("channel", uint64(cfg.Channel)))

	if err := d.drv.SoftAPSetConfig(&ap); err != nil {
		d.logerr("ap: failed to set config", slog.Any("err", err))
		return err
	}

	d.drv.SoftAPDHCPServerStop()

	if !cfg.IP.IsValid() || !cfg.Netmask.IsValid() {
		return errMissingAPAddr
	}
	// The AP's own address must be set explicitly, alongside the lease
	// range the DHCP server hands out.
	info, err := ipInfoFromAddrs(cfg.IP, cfg.Netmask, cfg.Gateway)
	if err != nil {
		return err
	}
	if err := d.drv.SetIPInfo(esphal.IfaceSoftAP, &info); err != nil {
		d.logerr("ap: failed to set IP config", slog.Any("err", err))
		return err
	}

	lease := esphal.DHCPLease{Enable: true}
	lease.Start, err = netutil.AddrToU32(cfg.DHCPStart)
	if err != nil {
		return err
	}
	lease.End, err = netutil.AddrToU32(cfg.DHCPEnd)
	if err != nil {
		return err
	}
	if err := d.drv.SoftAPSetDHCPLease(&lease); err != nil {
		d.logerr("ap: failed to set DHCP lease", slog.Any("err", err))
		return err
	}
	// We are not a router, do not offer ourselves as one.
	d.drv.SoftAPSetDHCPOfferRouter(false)

	if err := d.drv.SoftAPDHCPServerStart(); err != nil {
		d.logerr("ap: failed to start DHCP server", slog.Any("err", err))
		return err
	}

	d.info("ap up",
		slog.String("ip", cfg.IP.String()),
		slog.String("netmask", cfg.Netmask.String()),
		slog.String("gw", addrString(cfg.Gateway)),
		slog.String("dhcpStart", cfg.DHCPStart.String()),
		slog.String("dhcpEnd", cfg.DHCPEnd.String()),
	)
	return nil
}

// StationConnect asks the radio to (re)join the configured network.
func (d *Device) StationConnect() error {
	d.lock()
	defer d.unlock()
	return d.drv.StationConnect()
}

// StationDisconnect drops the current association.
func (d *Device) StationDisconnect() error {
	d.lock()
	defer d.unlock()
	return d.drv.StationDisconnect()
}

// IPInfo reports the addressing of one interface. An interface without an
// IP address yields errNoIPInfo.
func (d *Device) IPInfo(itf esphal.Interface) (IPInfo, error) {
	d.lock()
	defer d.unlock()
	info, err := d.drv.GetIPInfo(itf)
	if err != nil {
		return IPInfo{}, err
	}
	if info.IP == 0 {
		return IPInfo{}, errNoIPInfo
	}
	return IPInfo{
		IP:      netutil.U32ToAddr(info.IP),
		Netmask: netutil.U32ToAddr(info.Netmask),
		Gateway: netutil.U32ToAddr(info.Gateway),
	}, nil
}

// RSSI reports the station's received signal strength in dBm. The value is
// never positive; 0 means no reading is available.
func (d *Device) RSSI() int {
	d.lock()
	defer d.unlock()
	return clamp(d.drv.StationRSSI(), math.MinInt, 0)
}

// StationDefaultDNS formats the station's primary resolver address as a
// dotted quad. ok is false when no resolver is configured.
func (d *Device) StationDefaultDNS() (dns string, ok bool) {
	d.lock()
	defer d.unlock()
	addr, ok := d.drv.DefaultDNS()
	if !ok || addr == 0 {
		return "", false
	}
	return netutil.FormatU32(addr), true
}

func (d *Device) lock()   { d.mu.Lock() }
func (d *Device) unlock() { d.mu.Unlock() }

func ipInfoFromAddrs(ip, mask, gw netip.Addr) (info esphal.IPInfo, err error) {
	info.IP, err = netutil.AddrToU32(ip)
	if err != nil {
		return info, err
	}
	info.Netmask, err = netutil.AddrToU32(mask)
	if err != nil {
		return info, err
	}
	if gw.IsValid() {
		info.Gateway, err = netutil.AddrToU32(gw)
	}
	return info, err
}

func addrString(a netip.Addr) string {
	if !a.IsValid() {
		return "(none)"
	}
	return a.String()
}

// expandPlaceholders substitutes '?' characters in ssid with the uppercase
// hexadecimal digits of mac, the rightmost '?' taking the rightmost digit.
func expandPlaceholders(ssid string, mac [6]byte) string {
	digits := strings.ToUpper(hex.EncodeToString(mac[:]))
	out := []byte(ssid)
	di := len(digits)
	for i := len(out) - 1; i >= 0 && di > 0; i-- {
		if out[i] == '?' {
			di--
			out[i] = digits[di]
		}
	}
	return string(out)
}

// clamp bounds v to the [lo, hi] range.
func clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
