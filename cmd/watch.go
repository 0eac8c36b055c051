package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/supplycurve/batch"
	"github.com/google/subcommands"
)

type watchCmd struct {
	config string
	runNow bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "run the batch on a schedule" }
func (*watchCmd) Usage() string {
	return `mbase watch [-config <file>] [-run-now]

  Runs the batch on the cron schedule of the configuration file (with
  seconds, e.g. "0 0 6 * * *"), so that charts always mark the current date.
  Stops on SIGINT or SIGTERM.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "supply.yaml", "configuration file")
	f.BoolVar(&c.runNow, "run-now", true, "run the batch once before waiting for the schedule")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rec, err := openRecorder(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rec.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := batch.NewScheduler(ctx, cfg, rec)
	if err := s.Register(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.runNow {
		s.RunNow()
	}
	s.Start()
	<-ctx.Done()
	log.Println("shutting down")
	s.Stop()
	return subcommands.ExitSuccess
}
