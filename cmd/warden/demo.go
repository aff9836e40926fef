package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/warden-social/warden/engine"
	"github.com/warden-social/warden/fakedata"
	"github.com/warden-social/warden/operator"

	cli "github.com/urfave/cli/v2"
)

var demoCmd = &cli.Command{
	Name:  "demo",
	Usage: "process a small batch of sample posts with interactive console review",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "fake",
			Usage: "number of additional generated posts to process",
			Value: 0,
		},
	},
	Action: func(cctx *cli.Context) error {
		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))
		slog.SetDefault(logger)

		eng := engine.EngineTestFixture(cctx.Duration("review-timeout"))
		eng.Logger = logger
		eng.Reviewer = cctx.String("reviewer")
		eng.Gate.Logger = logger

		console := operator.NewConsoleChannel(os.Stdout, os.Stdin, eng.Gate)
		eng.Gate.Notifier = console

		consoleCtx, stopConsole := context.WithCancel(ctx)
		defer stopConsole()
		go console.Run(consoleCtx)

		items := engine.TestContentItems()
		if n := cctx.Int("fake"); n > 0 {
			gen := fakedata.NewGenerator(nil, 0)
			for i := 0; i < n; i++ {
				profile := gen.NewProfile()
				item, err := gen.NewContentItem(ctx, &profile)
				if err != nil {
					return err
				}
				items = append(items, *item)
			}
		}

		fmt.Printf("Processing %d content items...\n", len(items))
		for i := range items {
			item := &items[i]
			fmt.Printf("\nAnalyzing content: %s\n", item.ID)
			fmt.Printf("Text: %q\n", item.Text)

			rec, err := eng.ProcessContent(ctx, item)
			if err != nil {
				return fmt.Errorf("processing %s: %w", item.ID, err)
			}
			fmt.Printf("Decision: %s (resolved by %s)\n", rec.Decision, rec.ResolvedBy)
		}

		report, err := eng.SummaryReport(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s", report)
		return nil
	},
}
