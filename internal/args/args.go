// Package args parses the command line:
//
//	httpd [--dry-run] [-a start|stop|reload|restart] <config>
package args

import (
	"errors"
	"fmt"
)

type Action uint8

const (
	// Run serves in the foreground.
	Run Action = iota
	Start
	Stop
	Reload
	Restart
)

func (a Action) String() string {
	switch a {
	case Start:
		return "start"
	case Stop:
		return "stop"
	case Reload:
		return "reload"
	case Restart:
		return "restart"
	default:
		return "run"
	}
}

func parseAction(str string) (Action, bool) {
	switch str {
	case "start":
		return Start, true
	case "stop":
		return Stop, true
	case "reload":
		return Reload, true
	case "restart":
		return Restart, true
	}

	return Run, false
}

type Args struct {
	DryRun bool
	Action Action
	Config string
}

var (
	ErrUnexpected    = errors.New("unexpected argument")
	ErrNoConfig      = errors.New("config file is not specified")
	ErrNoAction      = errors.New("-a requires an action")
	ErrMissingDaemon = errors.New("action requires -a")
)

// Usage is printed on malformed arguments.
const Usage = "usage: httpd [--dry-run] [-a start|stop|reload|restart] <config>"

// Parse parses the arguments, excluding the program name. The order matters: --dry-run goes
// first, -a immediately precedes the action and the config goes last.
func Parse(argv []string) (Args, error) {
	var (
		args   Args
		daemon bool
	)

	for _, arg := range argv {
		action, isAction := parseAction(arg)

		switch {
		case arg == "--dry-run":
			if args.DryRun || daemon || len(args.Config) > 0 {
				return Args{}, fmt.Errorf("%w: %s", ErrUnexpected, arg)
			}

			args.DryRun = true
		case arg == "-a":
			if daemon || len(args.Config) > 0 {
				return Args{}, fmt.Errorf("%w: %s", ErrUnexpected, arg)
			}

			daemon = true
		case isAction:
			switch {
			case !daemon:
				return Args{}, fmt.Errorf("%w: %s", ErrMissingDaemon, arg)
			case args.Action != Run || len(args.Config) > 0:
				return Args{}, fmt.Errorf("%w: %s", ErrUnexpected, arg)
			}

			args.Action = action
		default:
			if len(args.Config) > 0 {
				return Args{}, fmt.Errorf("%w: %s", ErrUnexpected, arg)
			}

			args.Config = arg
		}
	}

	switch {
	case daemon && args.Action == Run:
		return Args{}, ErrNoAction
	case len(args.Config) == 0:
		return Args{}, ErrNoConfig
	}

	return args, nil
}
