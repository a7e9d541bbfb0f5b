//go:build !noeap

package wifi

import (
	"errors"

	"log/slog"

	"github.com/ALLTERCO/wifi/esphal"
)

var errEAPNoDriver = errors.New("wifi: driver does not support enterprise auth")

// setupEnterprise configures WPA2-enterprise (802.1X) credentials when the
// station config carries them, and disables enterprise auth otherwise.
// Certificate and key material is loaded through the file collaborator;
// missing content is a hard setup failure.
func (d *Device) setupEnterprise(cfg *StationConfig) error {
	ent, ok := d.drv.(esphal.Enterprise)
	if !cfg.hasEnterprise() {
		if ok {
			return ent.SetEnterpriseEnable(false)
		}
		return nil
	}
	if !ok {
		d.logerr("sta: enterprise auth requested but driver lacks support")
		return errEAPNoDriver
	}

	if err := ent.SetEnterpriseUsername([]byte(cfg.User)); err != nil {
		return err
	}
	identity := cfg.AnonIdentity
	if identity == "" {
		// By default the username doubles as the outer identity.
		identity = cfg.User
	}
	if err := ent.SetEnterpriseIdentity([]byte(identity)); err != nil {
		return err
	}

	var err error
	if cfg.Pass != "" {
		err = ent.SetEnterprisePassword([]byte(cfg.Pass))
	} else {
		err = ent.ClearEnterprisePassword()
	}
	if err != nil {
		return err
	}

	if cfg.CACert != "" {
		pem, err := d.readFile(cfg.CACert)
		if err != nil {
			d.logerr("sta: failed to read CA cert",
				slog.String("path", cfg.CACert), slog.Any("err", err))
			return err
		}
		err = ent.SetEnterpriseCACert(pem)
		if err != nil {
			return err
		}
	} else if err := ent.ClearEnterpriseCACert(); err != nil {
		return err
	}

	if cfg.Cert != "" && cfg.Key != "" {
		certPEM, err := d.readFile(cfg.Cert)
		if err != nil {
			d.logerr("sta: failed to read client cert",
				slog.String("path", cfg.Cert), slog.Any("err", err))
			return err
		}
		keyPEM, err := d.readFile(cfg.Key)
		if err != nil {
			d.logerr("sta: failed to read client key",
				slog.String("path", cfg.Key), slog.Any("err", err))
			return err
		}
		if err := ent.SetEnterpriseCertKey(certPEM, keyPEM); err != nil {
			return err
		}
	}

	if err := ent.ClearEnterpriseNewPassword(); err != nil {
		return err
	}
	if err := ent.SetEnterpriseDisableTimeCheck(true); err != nil {
		return err
	}
	return ent.SetEnterpriseEnable(true)
}
