package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/svgcheck/internal/core/domain"
	"github.com/kamal-hamza/svgcheck/internal/core/services"
	"github.com/kamal-hamza/svgcheck/pkg/ui"
)

var (
	watchSkipValidation bool
	watchQuiet          bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the checks whenever an icon or the README changes",
	Long: `Watch the svg directory and the README and re-run every check on change.

This monitors:
  - .svg files created, modified, renamed or deleted
  - the README being saved

Changes are debounced (watch_debounce_ms in the config). Press Ctrl+C to stop.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchSkipValidation, "skip-validation", false, "Do not run the W3C validator")
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Only print failing checks and the summary")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := getContext(cmd)
	out := cmd.OutOrStdout()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(appWorkspace.SVGPath); err != nil {
		return fmt.Errorf("failed to watch svg directory: %w", err)
	}
	// Editors often replace the README via rename, so watch its directory
	readmeDir := filepath.Dir(appWorkspace.ReadmePath)
	if filepath.Clean(readmeDir) != filepath.Clean(appWorkspace.SVGPath) {
		if err := watcher.Add(readmeDir); err != nil {
			return fmt.Errorf("failed to watch README directory: %w", err)
		}
	}

	fmt.Fprintln(out, ui.FormatRocket("Watching icons..."))
	fmt.Fprintln(out, ui.FormatMuted("SVG directory: "+appWorkspace.Rel(appWorkspace.SVGPath)))
	fmt.Fprintln(out, ui.FormatMuted("README: "+appWorkspace.Rel(appWorkspace.ReadmePath)))
	fmt.Fprintln(out, ui.FormatMuted("Press Ctrl+C to stop"))

	req := services.CheckRequest{
		SkipValidation: watchSkipValidation || appConfig.SkipValidation,
	}

	runOnce := func() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.FormatMuted(time.Now().Format("15:04:05")+" running checks"))

		resp, err := checkService.Execute(ctx, req)
		if err != nil {
			// Setup errors end a one-shot run; here they only end this pass
			fmt.Fprintln(out, ui.FormatError(err.Error()))
			return
		}
		renderReport(out, resp.Report, watchQuiet)
		renderSummary(out, resp)
	}

	runOnce()

	// The timer only signals; checks run on this goroutine so passes never overlap
	trigger := make(chan struct{}, 1)
	debounce := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isWatchedEvent(event, appWorkspace.ReadmePath, appWorkspace.SVGPath) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case <-trigger:
			runOnce()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.FormatMuted("Watcher stopped"))
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		}
	}
}

// isWatchedEvent reports whether an fsnotify event should trigger a new pass
func isWatchedEvent(event fsnotify.Event, readmePath, svgDir string) bool {
	if !(event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)) {
		return false
	}

	if filepath.Clean(event.Name) == filepath.Clean(readmePath) {
		return true
	}

	// Skip editor temp files
	baseName := filepath.Base(event.Name)
	if strings.HasPrefix(baseName, ".") || strings.HasPrefix(baseName, "~") {
		return false
	}

	return domain.IsSVG(baseName) && filepath.Clean(filepath.Dir(event.Name)) == filepath.Clean(svgDir)
}
