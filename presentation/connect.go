// Package presentation wires the core's ports to concrete
// collaborators and drives one connect attempt, the way the teacher's
// presentation package wires StartClient/StartServer to their
// respective infrastructure adapters.
package presentation

import (
	"context"
	"fmt"
	"os"
	"time"

	"fortivpn/application"
	"fortivpn/domain/fortinet"
	"fortivpn/infrastructure/PAL/client_configuration"
	"fortivpn/infrastructure/PAL/exec_commander"
	"fortivpn/infrastructure/auth"
	"fortivpn/infrastructure/httpclient"
	"fortivpn/infrastructure/logging"
	"fortivpn/infrastructure/noop"
	"fortivpn/infrastructure/routing"
	"fortivpn/infrastructure/tunnel"
	"fortivpn/presentation/ui"
)

// tunInterface names the link the (out-of-scope) tun/tap attachment is
// expected to bring up; the Route Installer only issues the address
// and routing-table side effects against it, per SPEC_FULL.md §4.9.
const tunInterface = "fortivpn0"

// Connect runs the full connect sequence: authenticate, register the
// session, run Tunnel Bringup (which fetches the config), install routes,
// and block on the DPD ticker until ctx is cancelled or the collaborator
// chain fails.
func Connect(ctx context.Context, cfg *client_configuration.Configuration, logger application.Logger) error {
	baseURL := fmt.Sprintf("https://%s:%d", cfg.Host, cfg.Port)
	httpClient, err := httpclient.New(baseURL, cfg.InsecureSkipVerify)
	if err != nil {
		return fmt.Errorf("failed to build http client: %w", err)
	}

	sess := fortinet.NewSession(cfg.Host, cfg.Port, nil)

	term := ui.NewTerminal(os.Stdin, os.Stdout)
	driver := auth.NewDriver(httpClient, term, nil)
	cookie, err := driver.Run(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	sess.SVPNCookie = cookie
	logger.Printf("authenticated, cookie acquired")

	if err := logging.SetActiveSession(sess); err != nil {
		return err
	}
	defer func() { _ = logging.SetActiveSession(nil) }()

	bringup := tunnel.NewBringup(httpClient, noop.NewPPP(), noop.NewTransport())
	if err := bringup.Run(ctx, sess); err != nil {
		return fmt.Errorf("tunnel bringup failed: %w", err)
	}
	logger.Printf("tunnel established to %s:%d", cfg.Host, cfg.Port)

	installer := routing.NewInstaller(exec_commander.NewExecCommander(), logger, tunInterface)
	if err := installer.Apply(sess.Config); err != nil {
		return fmt.Errorf("route install failed: %w", err)
	}

	expiry, err := tunnel.NewExpiryMonitor(sess.AuthExpiration, sess.IdleTimeout)
	if err != nil {
		logger.Printf("expiry monitor disabled: %v", err)
		expiry = nil
	}

	ticker := tunnel.NewDPDTicker(sess.DPD, func(context.Context) error {
		if expiry == nil {
			return nil
		}
		return expiry.Check(time.Now())
	})

	defer tunnel.Teardown(context.Background(), noop.NewTransport(), func() (application.HTTPClient, error) {
		return httpclient.New(baseURL, cfg.InsecureSkipVerify)
	}, logger)

	return ticker.Run(ctx)
}
