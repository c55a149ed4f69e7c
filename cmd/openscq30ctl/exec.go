package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Oppzippy/OpenSCQ30-sub001/device"
	"github.com/Oppzippy/OpenSCQ30-sub001/settings"
)

// execOp is one --get or --set flag, in the order it appeared on the
// command line.
type execOp struct {
	get     bool
	setting string
	raw     string // --set only
}

// parseExecArgs walks args itself rather than handing them to pflag:
// the CLI contract requires --get and --set to evaluate in literal
// appearance order, and pflag's repeated-flag slices lose the
// interleaving between distinct flag names. A single positional
// argument, the device's MAC address, may appear anywhere.
func parseExecArgs(args []string) (mac string, ops []execOp, err error) {
	i := 0
	next := func() (string, error) {
		i++
		if i >= len(args) {
			return "", fmt.Errorf("exec: %s requires a value", args[i-1])
		}
		return args[i], nil
	}
	for i < len(args) {
		a := args[i]
		switch {
		case a == "--get":
			v, err := next()
			if err != nil {
				return "", nil, err
			}
			ops = append(ops, execOp{get: true, setting: v})
		case strings.HasPrefix(a, "--get="):
			ops = append(ops, execOp{get: true, setting: strings.TrimPrefix(a, "--get=")})
		case a == "--set":
			v, err := next()
			if err != nil {
				return "", nil, err
			}
			id, raw, ok := strings.Cut(v, "=")
			if !ok {
				return "", nil, fmt.Errorf("exec: --set %q: expected setting=value", v)
			}
			ops = append(ops, execOp{get: false, setting: id, raw: raw})
		case strings.HasPrefix(a, "--set="):
			id, raw, ok := strings.Cut(strings.TrimPrefix(a, "--set="), "=")
			if !ok {
				return "", nil, fmt.Errorf("exec: --set %q: expected setting=value", a)
			}
			ops = append(ops, execOp{get: false, setting: id, raw: raw})
		case strings.HasPrefix(a, "-"):
			return "", nil, fmt.Errorf("exec: unknown flag %q", a)
		default:
			if mac != "" {
				return "", nil, fmt.Errorf("exec: unexpected argument %q", a)
			}
			mac = a
		}
		i++
	}
	if mac == "" {
		return "", nil, fmt.Errorf("exec: expected a MAC address argument")
	}
	return mac, ops, nil
}

type execRow struct {
	setting settings.SettingId
	value   string
}

// runExec implements `exec <mac> [--get <setting>] [--set
// <setting>=<value>] ...`: each op is applied in order, appending an
// observed-value row; on the first failure, rows already gathered are
// printed before returning the error.
func runExec(args []string) error {
	mac, ops, err := parseExecArgs(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	sess, err := openSession(ctx, mac)
	if err != nil {
		return err
	}
	defer sess.close()

	var rows []execRow
	opErr := runOps(ctx, sess, ops, &rows)
	printExecRows(rows)
	return opErr
}

func runOps(ctx context.Context, sess *session, ops []execOp, rows *[]execRow) error {
	for _, op := range ops {
		id := settings.SettingId(op.setting)
		if op.get {
			setting, ok, err := sess.dev.Setting(id)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			if !ok {
				return fmt.Errorf("not found: unknown setting %q", op.setting)
			}
			*rows = append(*rows, execRow{setting: id, value: renderSetting(setting)})
			continue
		}

		setting, ok, err := sess.dev.Setting(id)
		if err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
		if !ok {
			return fmt.Errorf("not found: unknown setting %q", op.setting)
		}
		value, err := parseValue(setting, op.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
		if err := sess.dev.SetSettingValues(ctx, []device.SettingWrite{{ID: id, Value: value}}); err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}

		updated, ok, err := sess.dev.Setting(id)
		if err != nil || !ok {
			*rows = append(*rows, execRow{setting: id, value: renderSetting(setting)})
			continue
		}
		*rows = append(*rows, execRow{setting: id, value: renderSetting(updated)})
	}
	return nil
}

func printExecRows(rows []execRow) {
	w := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
	defer w.Flush()
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\n", r.setting, r.value)
	}
}
