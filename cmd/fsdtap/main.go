// main.go
// Copyright(c) 2022 Matt Pharr, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Command fsdtap is a demonstration consumer of the fsd/aggregate/capture
// packages: it either taps an FSD server directly or replays a recorded
// session trace, logs every classified event, and optionally records
// a new trace as it goes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vatsimnet/fsdtap/capture"
	"github.com/vatsimnet/fsdtap/config"
	vicelog "github.com/vatsimnet/fsdtap/log"
)

var configFile = flag.String("config", "", "optional YAML file with default configuration")

func main() {
	cfg := config.Default()

	writeBack := config.ParseFlags(flag.CommandLine, &cfg)
	flag.Parse()
	writeBack()

	if *configFile != "" {
		if err := config.LoadFile(&cfg, *configFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		// Re-apply the command line so explicit flags win over the file.
		fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
		fs.String("config", "", "")
		reapply := config.ParseFlags(fs, &cfg)
		fs.Parse(os.Args[1:])
		reapply()
	}

	lg := vicelog.New(cfg.LogLevel, cfg.LogDir)

	var source capture.Source
	var serverIPs []string

	if cfg.ReplayFile != "" {
		rs, err := capture.NewReplaySource(cfg.ReplayFile, cfg.ReplayRate)
		if err != nil {
			lg.Error("opening replay source", "error", err)
			os.Exit(1)
		}
		defer rs.Close()
		source = rs
	} else {
		if cfg.ConnectAddress == "" {
			fmt.Fprintln(os.Stderr, "one of -connect or -replay is required")
			os.Exit(1)
		}

		ips, err := capture.FetchServerDirectory(cfg.ServerDirURL)
		if err != nil {
			lg.Error("fetching server directory", "error", err)
			os.Exit(1)
		}
		serverIPs = ips

		ts, err := capture.DialTCPSource(cfg.ConnectAddress)
		if err != nil {
			lg.Error("connecting to FSD server", "error", err)
			os.Exit(1)
		}
		defer ts.Close()
		source = ts
	}

	facade := capture.NewFacade(source, serverIPs, lg)

	if cfg.RecordTraceFile != "" {
		tw, err := capture.NewTraceWriter(cfg.RecordTraceFile)
		if err != nil {
			lg.Error("opening trace writer", "error", err)
			os.Exit(1)
		}
		defer tw.Close()
		facade.SetTrace(tw)
	}

	for {
		ev, ok, err := facade.Next()
		if err != nil {
			lg.Error("packet source failed", "error", err)
			os.Exit(1)
		}
		if !ok {
			lg.Info("source exhausted")
			return
		}

		lg.Debug("event", "direction", ev.Direction.String(), "record", fmt.Sprintf("%+v", ev.Record))
	}
}
