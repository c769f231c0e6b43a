package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/indigo-web/httpd"
	"github.com/indigo-web/httpd/config"
	"github.com/indigo-web/httpd/internal/args"
	"github.com/indigo-web/httpd/internal/daemon"
	"github.com/indigo-web/httpd/internal/logging"
	"github.com/rs/zerolog"
)

const stopTimeout = 30 * time.Second

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	arguments, err := args.Parse(argv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, args.Usage)
		return 2
	}

	cfg, err := config.Load(arguments.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid config file:", err)
		return 1
	}

	if arguments.DryRun {
		if err = cfg.Dump(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		return 0
	}

	if arguments.Action != args.Run {
		if err = control(arguments, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", arguments.Action, err)
			return 1
		}

		return 0
	}

	log, closer, err := logging.New(cfg.Global)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot open the log file:", err)
		return 1
	}

	defer closer.Close()

	if err = serve(cfg, log); err != nil {
		return 1
	}

	return 0
}

// control drives the server running in background.
func control(arguments args.Args, cfg *config.Config) error {
	pidfile := cfg.Global.PIDFile

	switch arguments.Action {
	case args.Stop:
		return daemon.Stop(pidfile, stopTimeout)
	case args.Reload:
		return daemon.Reload(pidfile)
	}

	self, err := daemon.Self()
	if err != nil {
		return err
	}

	configPath, err := filepath.Abs(arguments.Config)
	if err != nil {
		return err
	}

	var pid int
	if arguments.Action == args.Restart {
		pid, err = daemon.Restart(pidfile, stopTimeout, self, configPath)
	} else {
		pid, err = daemon.Start(pidfile, self, configPath)
	}

	if err == nil {
		fmt.Printf("started with pid %d\n", pid)
	}

	return err
}

// serve runs the server in the foreground until interrupted.
func serve(cfg *config.Config, log zerolog.Logger) error {
	pidfile := cfg.Global.PIDFile
	if err := daemon.WritePID(pidfile, os.Getpid()); err != nil {
		log.Error().Err(err).Str("pid_file", pidfile).Msg("cannot write the pid file")
		return err
	}

	defer func() {
		if err := daemon.RemovePID(pidfile); err != nil {
			log.Warn().Err(err).Msg("cannot remove the pid file")
		}
	}()

	app := httpd.New(cfg, log)
	if err := app.Bind(); err != nil {
		log.Error().Err(err).Msg("could not create the server socket")
		return err
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, daemon.ReloadSignal)
	defer signal.Stop(signals)

	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case sig := <-signals:
				if sig == daemon.ReloadSignal {
					log.Info().Msg("reload requested, nothing to reload")
					continue
				}

				log.Info().Str("signal", sig.String()).Msg("stopping")
				app.Stop()
				return
			case <-done:
				return
			}
		}
	}()

	log.Info().Int("pid", os.Getpid()).Msg("started")

	return app.Serve()
}
