//go:build noeap

package wifi

import "errors"

var errEAPDisabled = errors.New("wifi: enterprise auth support not compiled in")

// setupEnterprise rejects enterprise credentials when 802.1X support is
// compiled out; builds carrying the noeap tag pay nothing for the feature.
func (d *Device) setupEnterprise(cfg *StationConfig) error {
	if !cfg.hasEnterprise() {
		return nil
	}
	d.logerr("sta: enterprise auth not compiled in, rebuild without the noeap tag")
	return errEAPDisabled
}
