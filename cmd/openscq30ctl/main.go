// Command openscq30ctl is the headless CLI collaborator described in
// the library's CLI surface: list a paired device's settings, or get
// and set a mix of them against a live connection.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Oppzippy/OpenSCQ30-sub001/config"
	"github.com/Oppzippy/OpenSCQ30-sub001/registry"
	"github.com/Oppzippy/OpenSCQ30-sub001/store"
	"github.com/Oppzippy/OpenSCQ30-sub001/transport"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "list-settings":
		err = runListSettings(os.Args[2:])
	case "exec":
		err = runExec(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "openscq30ctl:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  openscq30ctl list-settings [--no-categories] [--no-extended-info] <mac>
  openscq30ctl exec <mac> [--get <setting>] [--set <setting>=<value>] ...

--get and --set may repeat and are evaluated in the order given.`)
}

// session bundles the shared store/registry/device plumbing every
// subcommand needs, torn down with close once the subcommand returns.
type session struct {
	cfg   config.Config
	store *store.Store
	reg   *registry.Registry
	dev   registry.Device
	mac   transport.MAC
}

func openSession(ctx context.Context, macArg string) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := config.NewLogger(cfg)

	mac, err := transport.ParseMAC(macArg)
	if err != nil {
		return nil, fmt.Errorf("not found: %w", err)
	}

	st, err := store.Open(store.NewFileBackend(cfg.StorePath))
	if err != nil {
		return nil, fmt.Errorf("storage error: %w", err)
	}
	st.SetLogger(logger)

	paired, err := st.FetchPairedDevices(ctx)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("storage error: %w", err)
	}
	var rec *store.PairedDeviceRecord
	for i := range paired {
		if paired[i].MAC == mac {
			rec = &paired[i]
			break
		}
	}
	if rec == nil {
		st.Close()
		return nil, fmt.Errorf("not found: %s is not a paired device", mac)
	}

	reg := registry.NewWithRetrySchedule(cfg.RetrySchedule())
	reg.SetLogger(logger)

	dev, err := reg.Acquire(ctx, registry.PairedDevice{Name: rec.Name, MAC: mac, Model: rec.Model})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("transport error: %w", err)
	}

	return &session{cfg: cfg, store: st, reg: reg, dev: dev, mac: mac}, nil
}

func (s *session) close() {
	s.reg.Release(s.mac)
	s.store.Close()
}

// loadConfig reads the default configuration file, falling back to
// config.Default when it does not exist so a fresh install still runs.
func loadConfig() (config.Config, error) {
	path := config.DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return config.Load(path)
}
