package wifi

import (
	"errors"

	"github.com/ALLTERCO/wifi/esphal"
)

var errFake = errors.New("fake vendor failure")

type rateCall struct {
	band     esphal.RateBand
	itf      esphal.Interface
	max, min uint8
}

// fakeDriver records every vendor call in order and can be programmed to
// fail individual operations.
type fakeDriver struct {
	calls []string

	mode          esphal.OpMode
	modeSets      []esphal.OpMode
	failSetOpMode bool

	sleeps []esphal.SleepType

	connects     int
	disconnects  int
	staCfg       esphal.StationConfig
	staCfgSet    bool
	failStaCfg   bool
	autoConnect  []bool
	reconnect    []bool
	hostname     string
	failHostname bool
	dhcpcStops   int

	apCfg       esphal.SoftAPConfig
	apCfgSet    bool
	failAPCfg   bool
	dhcpsStarts int
	dhcpsStops  int
	failDHCPS   bool
	lease       esphal.DHCPLease
	leaseSet    bool
	failLease   bool
	offerRouter []bool

	ipSet     map[esphal.Interface]esphal.IPInfo
	ipGet     map[esphal.Interface]esphal.IPInfo
	failSetIP bool

	rateCalls   []rateCall
	rateMask    uint8
	failBand    map[esphal.RateBand]bool
	failSetMask bool

	scanCfg  *esphal.ScanConfig
	scanDone func(esphal.ScanStatus, *esphal.BSSInfo)
	failScan bool

	evcb func(*esphal.Event)

	rssi   int
	dns    uint32
	dnsOK  bool
	mac    [6]byte
	macErr error
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		ipSet:    make(map[esphal.Interface]esphal.IPInfo),
		ipGet:    make(map[esphal.Interface]esphal.IPInfo),
		failBand: make(map[esphal.RateBand]bool),
	}
}

func (f *fakeDriver) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeDriver) SetOpMode(mode esphal.OpMode) error {
	f.record("SetOpMode")
	f.modeSets = append(f.modeSets, mode)
	if f.failSetOpMode {
		return errFake
	}
	f.mode = mode
	return nil
}

func (f *fakeDriver) GetOpMode() (esphal.OpMode, error) {
	f.record("GetOpMode")
	return f.mode, nil
}

func (f *fakeDriver) SetSleepType(st esphal.SleepType) error {
	f.record("SetSleepType")
	f.sleeps = append(f.sleeps, st)
	return nil
}

func (f *fakeDriver) StationConnect() error {
	f.record("StationConnect")
	f.connects++
	return nil
}

func (f *fakeDriver) StationDisconnect() error {
	f.record("StationDisconnect")
	f.disconnects++
	return nil
}

func (f *fakeDriver) StationSetConfig(cfg *esphal.StationConfig) error {
	f.record("StationSetConfig")
	if f.failStaCfg {
		return errFake
	}
	f.staCfg = *cfg
	f.staCfgSet = true
	return nil
}

func (f *fakeDriver) StationSetAutoConnect(enable bool) error {
	f.record("StationSetAutoConnect")
	f.autoConnect = append(f.autoConnect, enable)
	return nil
}

func (f *fakeDriver) StationSetReconnectPolicy(enable bool) error {
	f.record("StationSetReconnectPolicy")
	f.reconnect = append(f.reconnect, enable)
	return nil
}

func (f *fakeDriver) StationSetHostname(name string) error {
	f.record("StationSetHostname")
	if f.failHostname {
		return errFake
	}
	f.hostname = name
	return nil
}

func (f *fakeDriver) StationRSSI() int {
	f.record("StationRSSI")
	return f.rssi
}

func (f *fakeDriver) StationDHCPClientStop() error {
	f.record("StationDHCPClientStop")
	f.dhcpcStops++
	return nil
}

func (f *fakeDriver) SoftAPSetConfig(cfg *esphal.SoftAPConfig) error {
	f.record("SoftAPSetConfig")
	if f.failAPCfg {
		return errFake
	}
	f.apCfg = *cfg
	f.apCfgSet = true
	return nil
}

func (f *fakeDriver) SoftAPDHCPServerStart() error {
	f.record("SoftAPDHCPServerStart")
	if f.failDHCPS {
		return errFake
	}
	f.dhcpsStarts++
	return nil
}

func (f *fakeDriver) SoftAPDHCPServerStop() error {
	f.record("SoftAPDHCPServerStop")
	f.dhcpsStops++
	return nil
}

func (f *fakeDriver) SoftAPSetDHCPLease(lease *esphal.DHCPLease) error {
	f.record("SoftAPSetDHCPLease")
	if f.failLease {
		return errFake
	}
	f.lease = *lease
	f.leaseSet = true
	return nil
}

func (f *fakeDriver) SoftAPSetDHCPOfferRouter(offer bool) error {
	f.record("SoftAPSetDHCPOfferRouter")
	f.offerRouter = append(f.offerRouter, offer)
	return nil
}

func (f *fakeDriver) SetIPInfo(itf esphal.Interface, info *esphal.IPInfo) error {
	f.record("SetIPInfo")
	if f.failSetIP {
		return errFake
	}
	f.ipSet[itf] = *info
	return nil
}

func (f *fakeDriver) GetIPInfo(itf esphal.Interface) (esphal.IPInfo, error) {
	f.record("GetIPInfo")
	return f.ipGet[itf], nil
}

func (f *fakeDriver) MACAddress(itf esphal.Interface) ([6]byte, error) {
	f.record("MACAddress")
	return f.mac, f.macErr
}

func (f *fakeDriver) SetRateLimit(band esphal.RateBand, itf esphal.Interface, max, min uint8) error {
	f.record("SetRateLimit")
	f.rateCalls = append(f.rateCalls, rateCall{band: band, itf: itf, max: max, min: min})
	if f.failBand[band] {
		return errFake
	}
	return nil
}

func (f *fakeDriver) GetRateLimitMask() uint8 {
	f.record("GetRateLimitMask")
	return f.rateMask
}

func (f *fakeDriver) SetRateLimitMask(mask uint8) error {
	f.record("SetRateLimitMask")
	if f.failSetMask {
		return errFake
	}
	f.rateMask = mask
	return nil
}

func (f *fakeDriver) Scan(cfg *esphal.ScanConfig, done func(esphal.ScanStatus, *esphal.BSSInfo)) error {
	f.record("Scan")
	if f.failScan {
		return errFake
	}
	c := *cfg
	f.scanCfg = &c
	f.scanDone = done
	return nil
}

func (f *fakeDriver) SetEventCallback(cb func(ev *esphal.Event)) {
	f.record("SetEventCallback")
	f.evcb = cb
}

func (f *fakeDriver) DefaultDNS() (uint32, bool) {
	f.record("DefaultDNS")
	return f.dns, f.dnsOK
}

// fakeEAPDriver extends fakeDriver with the Enterprise capability.
type fakeEAPDriver struct {
	*fakeDriver

	user, identity, pass []byte
	caCert, cert, key    []byte
	passCleared          bool
	caCleared            bool
	newPassCleared       bool
	timeCheckDisabled    bool
	enabled              []bool
}

func newFakeEAPDriver() *fakeEAPDriver {
	return &fakeEAPDriver{fakeDriver: newFakeDriver()}
}

func (f *fakeEAPDriver) SetEnterpriseUsername(user []byte) error {
	f.record("SetEnterpriseUsername")
	f.user = user
	return nil
}

func (f *fakeEAPDriver) SetEnterpriseIdentity(identity []byte) error {
	f.record("SetEnterpriseIdentity")
	f.identity = identity
	return nil
}

func (f *fakeEAPDriver) SetEnterprisePassword(pass []byte) error {
	f.record("SetEnterprisePassword")
	f.pass = pass
	return nil
}

func (f *fakeEAPDriver) ClearEnterprisePassword() error {
	f.record("ClearEnterprisePassword")
	f.passCleared = true
	return nil
}

func (f *fakeEAPDriver) SetEnterpriseCACert(pem []byte) error {
	f.record("SetEnterpriseCACert")
	f.caCert = pem
	return nil
}

func (f *fakeEAPDriver) ClearEnterpriseCACert() error {
	f.record("ClearEnterpriseCACert")
	f.caCleared = true
	return nil
}

func (f *fakeEAPDriver) SetEnterpriseCertKey(certPEM, keyPEM []byte) error {
	f.record("SetEnterpriseCertKey")
	f.cert = certPEM
	f.key = keyPEM
	return nil
}

func (f *fakeEAPDriver) ClearEnterpriseNewPassword() error {
	f.record("ClearEnterpriseNewPassword")
	f.newPassCleared = true
	return nil
}

func (f *fakeEAPDriver) SetEnterpriseDisableTimeCheck(disable bool) error {
	f.record("SetEnterpriseDisableTimeCheck")
	f.timeCheckDisabled = disable
	return nil
}

func (f *fakeEAPDriver) SetEnterpriseEnable(enable bool) error {
	f.record("SetEnterpriseEnable")
	f.enabled = append(f.enabled, enable)
	return nil
}

// newTestDevice builds a Device wired to drv without going through Init,
// so tests start with an empty call record.
func newTestDevice(drv esphal.Driver) *Device {
	return &Device{
		drv: drv,
		readFile: func(name string) ([]byte, error) {
			return nil, errors.New("no file collaborator")
		},
	}
}

func calledCount(f *fakeDriver, name string) (n int) {
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}
