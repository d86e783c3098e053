package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arjunvn/sahaya/internal/notify"
	"github.com/spf13/cobra"
)

func newDigestCmd() *cobra.Command {
	var (
		configPath string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Post an open-dispatch digest",
		Long: `Summarizes complaints with unresolved role-slots and posts the digest to
the configured notification channel. With --watch, keeps running and posts
on the configured cron schedule.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd, configPath, watch)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "sahaya.yaml", "path to Sahaya config file")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and post on the digest_cron schedule")
	return cmd
}

func runDigest(cmd *cobra.Command, configPath string, watch bool) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	notifier, err := notify.FromConfig(cfg.Notify)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if !watch {
		report, err := notify.PostDigest(gormDB, notifier)
		if err != nil {
			return err
		}
		if report == nil {
			fmt.Fprintln(out, "No open dispatches. Nothing to report.")
			return nil
		}
		_, body := notify.FormatDigest(report)
		fmt.Fprintln(out, body)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(out, "\nReceived %s, stopping digest watcher...\n", sig)
		cancel()
	}()

	return notify.RunDigestLoop(ctx, gormDB, notifier, cfg.Notify.DigestCron, out)
}
