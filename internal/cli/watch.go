package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tillvoss/archsketch/pkg/pipeline"
)

// watchDebounce coalesces the burst of events editors emit per save.
const watchDebounce = 200 * time.Millisecond

// watchCommand creates the watch command: re-render a text file on
// every change until interrupted.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		output  string
		format  string
		width   float64
		height  float64
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-render a diagram whenever its source text changes",
		Long: `Watch an architecture text file and re-render the diagram on every
change. Useful next to an editor or an SVG viewer that reloads on write.

Examples:
  archsketch watch arch.txt -o diagram.svg
  archsketch watch arch.txt -o diagram.png --format png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), args[0], output, format, width, height, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (required)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatSVG, "output format: svg, png, dot, json")
	cmd.Flags().Float64Var(&width, "width", pipeline.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&height, "height", pipeline.DefaultHeight, "canvas height")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runWatch(ctx context.Context, input, output, format string, width, height float64, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	ctx = withLogger(ctx, c.Logger)

	render := func() {
		text, err := os.ReadFile(input)
		if err != nil {
			printError("read %s: %v", input, err)
			return
		}
		result, err := runner.Execute(ctx, pipeline.Options{
			Text:    string(text),
			Width:   width,
			Height:  height,
			Layout:  cfg.LayoutConfig(),
			Formats: []string{format},
			Logger:  c.Logger,
		})
		if err != nil {
			printError("render: %v", err)
			return
		}
		if err := os.WriteFile(output, result.Artifacts[format], 0o644); err != nil {
			printError("write %s: %v", output, err)
			return
		}
		printSuccess("%s (%d components, %d connections)",
			output, result.Stats.NodeCount, result.Stats.EdgeCount)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save
	// and the inode-level watch would drop off after the first write.
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("watch %s: %w", input, err)
	}

	target, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	render()
	printInfo("Watching %s (ctrl-c to stop)", input)

	var debounce *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pending:
			render()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != target {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			loggerFromContext(ctx).Warn("watcher error", "err", err)
		}
	}
}
