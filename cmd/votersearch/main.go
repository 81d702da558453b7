// Copyright 2025 The VoterSearch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the VoterSearch server and CLI application.

VoterSearch loads an electoral roll once (a JSON, YAML or msgpack file, an
HTTP URL, or a postgres table) and answers searches by voter ID, voter card
ID, or name in Latin and native script.

# Usage

Serve msgpack IPC on stdin/stdout:

	votersearch serve --data votersJSON.json

Serve the JSON HTTP API:

	votersearch http --addr :8080

Search interactively, or once:

	votersearch cli
	votersearch find --mode name yadav shivaraj

Write the loaded roll in another format:

	votersearch export --format yaml --out roll.yaml

# Configuration

Defaults come from config.toml in the user config directory, created on
first run. --config points at another file. --data, --format and --mode
override the file.

	[data]
	source = "votersJSON.json"
	load_timeout_seconds = 30

	[search]
	default_mode = "all"
	normalize_unicode = false
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/votersearch/internal/cli"
	"github.com/bastiangx/votersearch/internal/utils"
	"github.com/bastiangx/votersearch/internal/web"
	"github.com/bastiangx/votersearch/pkg/config"
	"github.com/bastiangx/votersearch/pkg/dataset"
	"github.com/bastiangx/votersearch/pkg/search"
	"github.com/bastiangx/votersearch/pkg/server"
	"github.com/bastiangx/votersearch/pkg/service"
	"github.com/bastiangx/votersearch/pkg/store"
	"github.com/bastiangx/votersearch/pkg/voter"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
	AppName = "votersearch"
)

type app struct {
	configPath string
	dataFlag   string
	formatFlag string
	modeFlag   string
	debug      bool

	cfg        *config.Config
	activePath string
}

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         "Search an electoral roll by voter ID or name",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config.toml")
	rootCmd.PersistentFlags().StringVar(&a.dataFlag, "data", "", "Dataset file, URL or postgres DSN")
	rootCmd.PersistentFlags().StringVar(&a.formatFlag, "format", "", "Dataset format: json, yaml or msgpack (default: detect)")
	rootCmd.PersistentFlags().StringVar(&a.modeFlag, "mode", "", "Search mode: id, name or all")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Toggle debug logging")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve msgpack IPC over stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			svc, err := a.startBackgroundLoad(ctx)
			if err != nil {
				return err
			}
			return server.NewServer(svc).Start()
		},
	}

	var httpAddr string
	httpCmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the JSON HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			addr := a.cfg.Server.HTTPAddr
			if httpAddr != "" {
				addr = httpAddr
			}
			listener, err := web.MakeTCPListener(AppName, addr)
			if err != nil {
				return err
			}
			svc, err := a.startBackgroundLoad(ctx)
			if err != nil {
				listener.Close()
				return err
			}
			return web.RunWebServer(ctx, listener, svc, web.Options{EnableCORS: a.cfg.Server.EnableCORS})
		},
	}
	httpCmd.Flags().StringVar(&httpAddr, "addr", "", "Listen address (default from config)")

	var limit int
	cliCmd := &cobra.Command{
		Use:   "cli",
		Short: "Search interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			log.SetReportTimestamp(false)
			svc, err := a.startBackgroundLoad(ctx)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.CLI.SuggestLimit
			}
			h := cli.NewInputHandler(svc, os.Stdin, os.Stdout, a.mode(), limit, a.cfg.CLI.Color)
			return h.Start()
		},
	}
	cliCmd.Flags().IntVar(&limit, "limit", 10, "Number of completions to show")

	findCmd := &cobra.Command{
		Use:   "find QUERY...",
		Short: "Run one search and print the matching voters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			svc, err := a.loadNow(ctx)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			voters, err := svc.Search(query, a.mode())
			if err != nil {
				return errors.New(service.Message(err))
			}
			theme := cli.NewTheme(os.Stdout, a.cfg.CLI.Color)
			fmt.Fprintln(os.Stdout, theme.RenderResults(service.Summary(query, len(voters)), voters))
			return nil
		},
	}

	var outPath, outFormat string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the loaded roll to a file or stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()
			return a.export(ctx, outPath, outFormat)
		},
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	exportCmd.Flags().StringVar(&outFormat, "to", "", "Output format (default: from --out extension, else json)")

	var rebuild bool
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the active config file, or rewrite it with defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rebuild {
				path, err := config.RebuildConfigFile()
				if err != nil {
					return fmt.Errorf("failed to rebuild config: %w", err)
				}
				fmt.Fprintln(os.Stdout, path)
				return nil
			}
			fmt.Fprintln(os.Stdout, config.GetActiveConfigPath(a.activePath))
			return nil
		},
	}
	configCmd.Flags().BoolVar(&rebuild, "rebuild", false, "Overwrite the default config file with built-in defaults")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			showVersion(os.Stderr)
		},
	}

	rootCmd.AddCommand(serveCmd, httpCmd, cliCmd, findCmd, exportCmd, configCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func (a *app) init() error {
	log.SetOutput(os.Stderr)
	if a.debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg
	a.activePath = activePath
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	if a.dataFlag != "" {
		a.cfg.Data.Source = a.dataFlag
	}
	if a.formatFlag != "" {
		a.cfg.Data.Format = a.formatFlag
	}
	if a.modeFlag != "" {
		a.cfg.Search.DefaultMode = a.modeFlag
	}
	return nil
}

func (a *app) mode() search.Mode {
	return search.ParseMode(a.cfg.Search.DefaultMode)
}

func (a *app) engine() *search.Engine {
	return search.NewEngine(search.Options{NormalizeUnicode: a.cfg.Search.NormalizeUnicode})
}

func (a *app) source() (dataset.Source, error) {
	format, err := dataset.ParseFormat(a.cfg.Data.Format)
	if err != nil {
		return nil, err
	}
	location := a.cfg.Data.Source
	if pr, err := utils.NewPathResolver(); err == nil {
		log.Debug("Path resolution", "info", pr.RuntimeInfo())
		location = pr.ResolveDataFile(location)
	} else {
		log.Warnf("Failed to initialize path resolver: %v", err)
	}
	return dataset.OpenSource(location, dataset.OpenOptions{
		Format:      format,
		Table:       a.cfg.Database.Table,
		OrderBy:     a.cfg.Database.OrderBy,
		HTTPTimeout: a.cfg.Data.LoadTimeout(),
	})
}

func (a *app) loadContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if timeout := a.cfg.Data.LoadTimeout(); timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// startBackgroundLoad returns a service right away; searches fail with
// ErrStoreNotReady until the load goroutine publishes the store.
func (a *app) startBackgroundLoad(ctx context.Context) (*service.Service, error) {
	src, err := a.source()
	if err != nil {
		return nil, err
	}
	handle := &store.Handle{}
	go func() {
		loadCtx, cancel := a.loadContext(ctx)
		defer cancel()
		if err := store.LoadInto(loadCtx, handle, src); err != nil {
			log.Errorf("%v", err)
			return
		}
		log.Infof("Loaded %d voters from %s", handle.Get().Len(), src.Name())
	}()
	return service.New(handle, a.engine()), nil
}

func (a *app) loadNow(ctx context.Context) (*service.Service, error) {
	src, err := a.source()
	if err != nil {
		return nil, err
	}
	loadCtx, cancel := a.loadContext(ctx)
	defer cancel()
	handle := &store.Handle{}
	if err := store.LoadInto(loadCtx, handle, src); err != nil {
		return nil, err
	}
	return service.New(handle, a.engine()), nil
}

func (a *app) export(ctx context.Context, outPath, formatName string) error {
	format, err := dataset.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if format == dataset.FormatUnknown {
		format = dataset.DetectFormat(outPath)
	}
	if format == dataset.FormatUnknown {
		format = dataset.FormatJSON
	}

	src, err := a.source()
	if err != nil {
		return err
	}
	loadCtx, cancel := a.loadContext(ctx)
	defer cancel()
	st, err := store.Load(loadCtx, src)
	if err != nil {
		return err
	}

	if outPath == "" {
		err = writeSnapshot(os.Stdout, st.Records(), format)
	} else {
		err = writeSnapshotFile(outPath, st.Records(), format)
	}
	if err != nil {
		return err
	}
	log.Debugf("Exported %d voters as %s", st.Len(), format)
	return nil
}

func writeSnapshot(w io.Writer, records []voter.Record, format dataset.Format) error {
	if err := dataset.Export(w, records, format); err != nil {
		return fmt.Errorf("failed to export %s: %w", format, err)
	}
	return nil
}

// writeSnapshotFile fails if the file cannot be flushed on close.
func writeSnapshotFile(path string, records []voter.Record, format dataset.Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return writeSnapshot(f, records, format)
}

func showVersion(w io.Writer) {
	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["config"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	path, _ := config.GetDefaultConfigPath()
	logger.Print("")
	logger.Print("[ VoterSearch ] Electoral roll search by voter ID or name")
	logger.Print("", "version", Version)
	logger.Print("", "config", path)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
}
