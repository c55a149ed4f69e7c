package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/Oppzippy/OpenSCQ30-sub001/settings"
)

// runListSettings implements `list-settings [--no-categories]
// [--no-extended-info] <mac>`. All its flags are plain boolean
// switches, so ordinary pflag parsing is sufficient here (unlike exec,
// which needs the literal appearance order of --get/--set).
func runListSettings(args []string) error {
	fs := pflag.NewFlagSet("list-settings", pflag.ContinueOnError)
	noCategories := fs.Bool("no-categories", false, "Print one flat list instead of grouping by category.")
	noExtendedInfo := fs.Bool("no-extended-info", false, "Omit each setting's options/range/band layout.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("list-settings: expected exactly one MAC address argument")
	}

	ctx := context.Background()
	sess, err := openSession(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	defer sess.close()

	w := tabwriter.NewWriter(os.Stdout, 2, 2, 2, ' ', 0)
	defer w.Flush()

	if *noCategories {
		var ids []settings.SettingId
		for _, c := range sess.dev.Categories() {
			ids = append(ids, sess.dev.SettingsInCategory(c)...)
		}
		printSettingRows(w, sess, ids, *noExtendedInfo)
		return nil
	}

	for _, category := range sess.dev.Categories() {
		fmt.Fprintf(w, "%s\n", category)
		printSettingRows(w, sess, sess.dev.SettingsInCategory(category), *noExtendedInfo)
	}
	return nil
}

func printSettingRows(w *tabwriter.Writer, sess *session, ids []settings.SettingId, noExtendedInfo bool) {
	for _, id := range ids {
		setting, ok, err := sess.dev.Setting(id)
		if err != nil || !ok {
			continue
		}
		if noExtendedInfo {
			fmt.Fprintf(w, "  %s\t%s\n", id, renderSetting(setting))
			continue
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", id, renderSetting(setting), extendedInfo(setting))
	}
}
