// Package device implements the model-agnostic device engine: a
// setting manager dispatching reads/writes by id, a chain of state
// modifiers translating target-state diffs into outbound packets, and
// a change-notification broadcast for watchers. Per-model packages
// (soundcore/a3933, soundcore/demo) parametrize Device with their own
// state struct and register their modules into it.
package device

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Oppzippy/OpenSCQ30-sub001/settings"
	"github.com/Oppzippy/OpenSCQ30-sub001/wire"
)

// PacketSender is the subset of the packet I/O controller a state
// modifier needs: send one outbound packet and wait for its matching
// inbound response.
type PacketSender interface {
	SendWithResponse(ctx context.Context, outbound wire.Frame) (wire.Frame, error)
}

// StateModifier transitions a slice of state from current to target,
// emitting zero or more outbound packets through sender. Implementations
// may short-circuit if their slice of current and target are already
// equal.
type StateModifier[S any] interface {
	MoveToState(ctx context.Context, sender PacketSender, current, target *S) error
}

// PacketHandler folds an unsolicited inbound packet into state. It
// returns true if it recognized and consumed the packet.
type PacketHandler[S any] interface {
	HandlePacket(state *S, frame wire.Frame) bool
}

// Module bundles the three per-concern pieces a device feature
// registers: a settings handler (may be nil for packet-only modules),
// a state modifier (may be nil for read-only modules), and a packet
// handler (may be nil for modules with no unsolicited-packet role).
type Module[S any] struct {
	Category CategoryAndHandler
	Modifier StateModifier[S]
	Handler  PacketHandler[S]
}

// CategoryAndHandler pairs a settings.Handler with the category it is
// registered under, since settings.Manager.Register needs both.
type CategoryAndHandler struct {
	Category CategoryID
	Handler  settings.Handler
}

// CategoryID re-exports settings.CategoryId under the device package so
// model packages need not import settings directly just to build a
// Module.
type CategoryID = settings.CategoryId

// ChangeNotification is broadcast to watchers after a
// set_setting_values call whose modifiers all acknowledged and which
// applied at least one field; it lists the applied fields only.
type ChangeNotification struct {
	SettingIds []settings.SettingId
}

// command is a typed unit of work against the owning goroutine's state,
// with an embedded reply slot. Every public Device method that touches
// state builds one of these and blocks on its reply channel, so all
// access is serialized through a single goroutine — the command
// dispatcher the original's device actor used, giving us one place to
// log and recover from a modifier or handler panic. Mirrors
// store.Store's command/result/submit shape.
type command[S any] struct {
	run   func(*Device[S]) (any, error)
	reply chan result
}

type result struct {
	value any
	err   error
}

// Device is the generic per-model engine. S is the model's own state
// struct (decoded from wire packets); it must be safe to copy by value
// (state modifiers work against a cloned target). All state access runs
// on Device's own goroutine; exported methods are safe to call from any
// goroutine.
type Device[S any] struct {
	commands chan command[S]
	done     chan struct{}

	state     S
	manager   *settings.Manager
	modifiers []StateModifier[S]
	handlers  []PacketHandler[S]
	sender    PacketSender
	logger    *log.Logger

	watchMu  sync.Mutex
	watchers []chan ChangeNotification
}

// New builds a Device seeded with initialState, dispatching packets
// through sender, with modules registered in the given order, and
// starts its owning goroutine. Category registration order and
// in-category ordering follow the order modules are passed here,
// matching §4.5's registration-order contract.
func New[S any](initialState S, sender PacketSender, modules []Module[S]) (*Device[S], error) {
	d := &Device[S]{
		state:    initialState,
		manager:  settings.NewManager(),
		sender:   sender,
		logger:   log.Default(),
		commands: make(chan command[S]),
		done:     make(chan struct{}),
	}
	for _, m := range modules {
		if m.Category.Handler != nil {
			if err := d.manager.Register(m.Category.Category, m.Category.Handler); err != nil {
				return nil, err
			}
		}
		if m.Modifier != nil {
			d.modifiers = append(d.modifiers, m.Modifier)
		}
		if m.Handler != nil {
			d.handlers = append(d.handlers, m.Handler)
		}
	}
	go d.run()
	return d, nil
}

// SetLogger replaces the device's logger, normally config.NewLogger's
// shared instance in place of the package default.
func (d *Device[S]) SetLogger(logger *log.Logger) {
	d.logger = logger
}

func (d *Device[S]) run() {
	defer close(d.done)
	for cmd := range d.commands {
		value, err := d.runGuarded(cmd.run)
		cmd.reply <- result{value: value, err: err}
	}
}

// runGuarded executes fn on the owning goroutine, recovering any panic
// so a single misbehaving modifier or packet handler cannot take down
// the actor and strand every other caller blocked on its reply channel.
func (d *Device[S]) runGuarded(fn func(*Device[S]) (any, error)) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("device actor recovered from panic", "panic", r)
			err = fmt.Errorf("device: internal error: %v", r)
		}
	}()
	return fn(d)
}

// Close stops the owning goroutine. Pending commands already submitted
// complete before it exits.
func (d *Device[S]) Close() {
	close(d.commands)
	<-d.done
}

// submit runs fn against the live device on the owning goroutine and
// returns its typed result.
func submit[S any, T any](ctx context.Context, d *Device[S], fn func(*Device[S]) (T, error)) (T, error) {
	var zero T
	reply := make(chan result, 1)
	cmd := command[S]{
		run: func(dev *Device[S]) (any, error) {
			return fn(dev)
		},
		reply: reply,
	}
	select {
	case d.commands <- cmd:
	case <-ctx.Done():
		return zero, ctx.Err()
	}
	select {
	case r := <-reply:
		if r.err != nil {
			return zero, r.err
		}
		return r.value.(T), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Categories returns the device's presentation categories, in
// registration order.
func (d *Device[S]) Categories() []settings.CategoryId {
	return d.manager.Categories()
}

// SettingsInCategory returns the setting ids under category, in
// handler-registration order.
func (d *Device[S]) SettingsInCategory(category settings.CategoryId) []settings.SettingId {
	return d.manager.SettingsInCategory(category)
}

// settingResult bundles Setting's two-value read into the single typed
// value submit's reply channel carries.
type settingResult struct {
	setting settings.Setting
	ok      bool
}

// Setting reads one setting's current shape/value from the live state
// snapshot. It queues behind any command already in flight (notably a
// slow SetSettingValues waiting on the transport) but never waits on
// the network itself.
func (d *Device[S]) Setting(id settings.SettingId) (settings.Setting, bool, error) {
	res, err := submit(context.Background(), d, func(dev *Device[S]) (settingResult, error) {
		state := dev.state
		setting, ok, err := dev.manager.Get(&state, id)
		return settingResult{setting: setting, ok: ok}, err
	})
	if err != nil {
		return settings.Setting{}, false, err
	}
	return res.setting, res.ok, nil
}

// fieldError pairs a SettingId with the error encountered applying it,
// for aggregation in quick-preset and multi-field writes.
type fieldError struct {
	ID  settings.SettingId
	Err error
}

func (e fieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.ID, e.Err)
}

// AggregateError collects one or more per-field failures. It is
// returned by SetSettingValues and ActivateQuickPreset so callers can
// see exactly which fields failed while others succeeded.
type AggregateError struct {
	Failures []fieldError
}

func (e *AggregateError) Error() string {
	if len(e.Failures) == 1 {
		return e.Failures[0].Error()
	}
	return fmt.Sprintf("%d setting(s) failed", len(e.Failures))
}

// SettingWrite is one (id, value) pair submitted to SetSettingValues or
// stored inside a QuickPreset field.
type SettingWrite struct {
	ID    settings.SettingId
	Value settings.Value
}

// SetSettingValues implements §4.6's set_setting_values: clone current
// state into a target, apply each (id, value) pair through its owning
// handler, then run every state modifier in registration order against
// current vs target. On any modifier failure, SetSettingValues aborts
// without reverting: state is now partial and will be resynchronized by
// the next state-update packet. Handler-level (Invalid value) failures
// are aggregated and do not prevent other fields from applying.
func (d *Device[S]) SetSettingValues(ctx context.Context, fields []SettingWrite) error {
	_, err := submit(ctx, d, func(dev *Device[S]) (struct{}, error) {
		current := dev.state
		target := dev.state

		var agg AggregateError
		var applied []settings.SettingId
		for _, f := range fields {
			if err := dev.manager.Set(&target, f.ID, f.Value); err != nil {
				dev.logger.Warn("setting write rejected", "id", f.ID, "err", err)
				agg.Failures = append(agg.Failures, fieldError{ID: f.ID, Err: err})
				continue
			}
			applied = append(applied, f.ID)
		}

		for _, modifier := range dev.modifiers {
			if err := modifier.MoveToState(ctx, dev.sender, &current, &target); err != nil {
				dev.logger.Error("state modifier failed", "err", err)
				return struct{}{}, err
			}
		}

		dev.state = target

		if len(applied) > 0 {
			dev.logger.Debug("applied setting writes", "ids", applied)
			dev.notify(ChangeNotification{SettingIds: applied})
		}
		if len(agg.Failures) > 0 {
			return struct{}{}, &agg
		}
		return struct{}{}, nil
	})
	return err
}

// HandlePacket routes an unsolicited inbound frame through the
// registered packet handlers, folding it into the live state on the
// first match. Unmatched frames are silently dropped (logged by the
// caller, typically the I/O controller's reader loop).
func (d *Device[S]) HandlePacket(frame wire.Frame) bool {
	handled, _ := submit(context.Background(), d, func(dev *Device[S]) (bool, error) {
		for _, h := range dev.handlers {
			if h.HandlePacket(&dev.state, frame) {
				dev.logger.Debug("handled inbound packet", "command", frame.Command)
				return true, nil
			}
		}
		dev.logger.Warn("unhandled inbound packet", "command", frame.Command)
		return false, nil
	})
	return handled
}

// WatchForChanges returns a channel receiving a ChangeNotification
// after every SetSettingValues call whose modifiers all succeeded and
// which applied at least one field (including one that also returns an
// AggregateError for other, rejected fields). The channel is closed
// when ctx is done; callers must keep draining it to avoid blocking
// notification delivery to other watchers.
func (d *Device[S]) WatchForChanges(ctx context.Context) <-chan ChangeNotification {
	ch := make(chan ChangeNotification, 1)
	d.watchMu.Lock()
	d.watchers = append(d.watchers, ch)
	d.watchMu.Unlock()

	go func() {
		<-ctx.Done()
		d.watchMu.Lock()
		defer d.watchMu.Unlock()
		for i, w := range d.watchers {
			if w == ch {
				d.watchers = append(d.watchers[:i], d.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch
}

func (d *Device[S]) notify(n ChangeNotification) {
	d.watchMu.Lock()
	defer d.watchMu.Unlock()
	for _, w := range d.watchers {
		select {
		case w <- n:
		default:
			// a slow watcher drops a stale notification rather than
			// blocking every other watcher's delivery
		}
	}
}

// State returns a copy of the live state snapshot, for per-model
// packages (e.g. building a Setting from richer multi-field reads than
// a single handler covers).
func (d *Device[S]) State() S {
	s, _ := submit(context.Background(), d, func(dev *Device[S]) (S, error) {
		return dev.state, nil
	})
	return s
}

// ReplaceState overwrites the live state snapshot wholesale — used by
// the packet handler loop when a full state-update packet arrives.
func (d *Device[S]) ReplaceState(s S) {
	_, _ = submit(context.Background(), d, func(dev *Device[S]) (struct{}, error) {
		dev.state = s
		return struct{}{}, nil
	})
}
