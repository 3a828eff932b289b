package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/defreg/internal/log"
	"github.com/zjrosen/defreg/internal/metrics"
	"github.com/zjrosen/defreg/internal/presentation"
	"github.com/zjrosen/defreg/internal/pubsub"
	"github.com/zjrosen/defreg/internal/watcher"
)

var (
	watchMetricsAddr string
	watchRoots       []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch source directories and report cache invalidations",
	Long: `Watch every directory source configured with watch: true and print each
cache invalidation as files change. Roots given with --root are compiled up
front and recompiled after every change, so their UIDs can be followed.

Prometheus metrics are served on --metrics-addr while watching.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "",
		"address for /metrics and /health (default: metrics.addr from config)")
	watchCmd.Flags().StringSliceVar(&watchRoots, "root", nil,
		"root descriptors to recompile after each change")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return withEnv(func(e *env) error {
		if len(e.dirs) == 0 {
			return errors.New("no directory source has watch enabled")
		}
		out, err := output(cmd.OutOrStdout())
		if err != nil {
			return err
		}

		addr := watchMetricsAddr
		if addr == "" {
			addr = cfg.Metrics.Addr
		}
		srv := metrics.NewServer(addr, e.metrics)
		bound, err := srv.Start()
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Stop(shutdownCtx)
		}()
		log.Info(log.CatCLI, "metrics server listening", "addr", bound)

		// Subscribe before watching so no early change is missed.
		events := e.svc.Caches().Subscribe(ctx)
		for name, dl := range e.dirs {
			if err := dl.Watch(ctx, watcher.DefaultConfig(dl.Root())); err != nil {
				return fmt.Errorf("watching %s: %w", name, err)
			}
		}

		recompile := func() {
			for _, arg := range watchRoots {
				root, err := parseDescriptor(arg, "COMPONENT")
				if err != nil {
					log.ErrorErr(log.CatCLI, "bad root", err, "root", arg)
					continue
				}
				uid, err := e.registry(false).GetUID(ctx, "", root)
				if err != nil {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", root, err)
					continue
				}
				_ = out.FormatUID(presentation.UIDDTO{Root: presentation.FromDescriptor(root), UID: uid})
			}
		}
		recompile()

		for {
			ev, ok := pubsub.Next(ctx, events)
			if !ok {
				return nil
			}
			if err := out.FormatInvalidation(presentation.FromInvalidation(ev.Payload)); err != nil {
				return err
			}
			recompile()
		}
	})
}
