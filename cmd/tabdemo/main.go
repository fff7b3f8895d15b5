package main

import (
	"os"

	"github.com/alexflint/go-arg"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libtabfunc/evalcache"
	"github.com/sgostarter/libtabfunc/scenario"
)

func main() {
	var args struct {
		Scenario string `arg:"-s,--scenario" help:"yaml scenario file, the built-in checks when empty"`
		Cache    bool   `arg:"-c,--cache" help:"memoize function values"`
		Save     string `arg:"--save" help:"write the scenario to this file before running"`
	}

	arg.MustParse(&args)

	logger := l.NewConsoleLoggerWrapper()

	cfg := scenario.Default()

	if args.Scenario != "" {
		var err error

		cfg, err = scenario.Load(args.Scenario, nil)
		if err != nil {
			logger.WithFields(l.ErrorField(err), l.StringField("file", args.Scenario)).Fatal("load scenario failed")
		}
	}

	if args.Cache && cfg.Cache == nil {
		cfg.Cache = &evalcache.Config{}
	}

	if args.Save != "" {
		if err := scenario.Save(cfg, args.Save, nil); err != nil {
			logger.WithFields(l.ErrorField(err), l.StringField("file", args.Save)).Fatal("save scenario failed")
		}
	}

	report, err := scenario.Run(cfg, logger)
	if err != nil {
		logger.WithFields(l.ErrorField(err)).Fatal("run scenario failed")
	}

	if err = report.Write(os.Stdout); err != nil {
		logger.WithFields(l.ErrorField(err)).Fatal("write report failed")
	}

	if !report.OK() {
		os.Exit(1)
	}
}
