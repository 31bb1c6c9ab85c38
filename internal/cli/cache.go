package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tubemap/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered map cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (c *CLI) runCacheClear(ctx context.Context, w io.Writer) error {
	dir, _ := cacheDir()
	cfg := c.Config.CacheConfig(dir)

	switch cfg.Backend {
	case cache.BackendFile:
		if cfg.Dir == "" {
			return fmt.Errorf("no cache directory")
		}
		if _, err := os.Stat(cfg.Dir); os.IsNotExist(err) {
			printInfo(w, "Cache is empty")
			return nil
		}
		fc, err := cache.NewFileCache(cfg.Dir)
		if err != nil {
			return err
		}
		if err := fc.Clear(); err != nil {
			return fmt.Errorf("clear %s: %w", fc.Dir(), err)
		}
		printSuccess(w, "Cleared cached maps")
		printDetail(w, "Directory: %s", fc.Dir())

	case cache.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.RedisAddr, DB: cfg.RedisDB, Prefix: cfg.Prefix})
		if err != nil {
			return err
		}
		defer rc.Close()
		n, err := rc.Clear(ctx)
		if err != nil {
			return err
		}
		printSuccess(w, "Cleared %d cached entries", n)
		printDetail(w, "Redis: %s (prefix %q)", cfg.RedisAddr, cfg.Prefix)

	default:
		printInfo(w, "Caching is disabled")
	}
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached maps are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			cfg := c.Config.CacheConfig(dir)
			w := cmd.OutOrStdout()
			switch cfg.Backend {
			case cache.BackendFile:
				fmt.Fprintln(w, cfg.Dir)
			case cache.BackendRedis:
				printKeyValue(w, "redis", cfg.RedisAddr)
				printKeyValue(w, "prefix", cfg.Prefix)
			default:
				printInfo(w, "Caching is disabled")
			}
			return nil
		},
	}
}
