package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tillvoss/archsketch/pkg/cache"
	"github.com/tillvoss/archsketch/pkg/config"
)

// cacheCommand creates the cache command with info/clear subcommands.
// Only the file backend is inspectable; redis holds its own eviction.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local artifact cache",
	}
	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cacheClearCommand())
	return cmd
}

func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.openFileCache()
			if err != nil {
				return err
			}
			defer fc.Close()

			entries, size := 0, int64(0)
			err = filepath.WalkDir(fc.Dir(), func(path string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() {
					return err
				}
				info, err := d.Info()
				if err != nil {
					return err
				}
				entries++
				size += info.Size()
				return nil
			})
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Cache"))
			fmt.Printf("  %s %s\n", StyleDim.Render("location:"), StyleValue.Render(fc.Dir()))
			fmt.Printf("  %s %s\n", StyleDim.Render("entries: "), StyleValue.Render(fmt.Sprintf("%d", entries)))
			fmt.Printf("  %s %s\n", StyleDim.Render("size:    "), StyleValue.Render(formatBytes(size)))
			return nil
		},
	}
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.openFileCache()
			if err != nil {
				return err
			}
			defer fc.Close()

			if err := fc.Clear(); err != nil {
				return err
			}
			printSuccess("Cleared cache at %s", fc.Dir())
			return nil
		},
	}
}

// openFileCache opens the configured file cache directory.
func (c *CLI) openFileCache() (*cache.FileCache, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		dir, err = config.CacheDir()
		if err != nil {
			return nil, err
		}
	}
	return cache.NewFileCache(dir)
}

// formatBytes renders a byte count in human units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
