package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	intervals "github.com/menmos/intervals-go"
	"github.com/menmos/intervals-go/config"
	"github.com/menmos/intervals-go/interval"
	"github.com/menmos/intervals-go/payload"
	"github.com/menmos/intervals-go/server"
	"github.com/menmos/intervals-go/service"
)

type app struct {
	*kingpin.Application

	out io.Writer
	log *logrus.Logger

	serveCmd   *kingpin.CmdClause
	configPath *string
	port       *int
	watch      *bool

	processCmd      *kingpin.CmdClause
	processIncludes *[]string
	processExcludes *[]string
	processJSON     *bool

	queryCmd      *kingpin.CmdClause
	queryHost     *string
	queryProfile  *string
	queryIncludes *[]string
	queryExcludes *[]string

	versionCmd *kingpin.CmdClause
}

func newApp(out io.Writer) *app {
	a := &app{
		Application: kingpin.New("intervald", "Computes sorted, disjoint integer ranges from include and exclude lists."),
		out:         out,
		log:         logrus.New(),
	}
	a.HelpFlag.Short('h')

	a.serveCmd = a.Command("serve", "Run the HTTP interval service.")
	a.configPath = a.serveCmd.Flag("config", "path to a TOML configuration file (default: user config dir)").String()
	a.port = a.serveCmd.Flag("port", "port to listen on, overrides the configuration").Int()
	a.watch = a.serveCmd.Flag("watch", "reload log level and allowed origins when the configuration file changes").Bool()

	a.processCmd = a.Command("process", "Compute a result locally without a running service.")
	a.processIncludes = a.processCmd.Flag("include", "range expression to include, e.g. 10-100; attach values starting with a hyphen: --include=-5--1 or -i-5--1").Short('i').Strings()
	a.processExcludes = a.processCmd.Flag("exclude", "range expression to exclude, e.g. --exclude=-3--2").Short('e').Strings()
	a.processJSON = a.processCmd.Flag("json", "print the full JSON response").Bool()

	a.queryCmd = a.Command("query", "Send a request to a running service.")
	a.queryHost = a.queryCmd.Flag("host", "service URL").Default("http://localhost:3000").String()
	a.queryProfile = a.queryCmd.Flag("profile", "client profile from the configuration file, overrides --host").String()
	a.queryIncludes = a.queryCmd.Flag("include", "range expression to include, e.g. 10-100 or --include=-5--1").Short('i').Strings()
	a.queryExcludes = a.queryCmd.Flag("exclude", "range expression to exclude, e.g. 20-30 or --exclude=-3--2").Short('e').Strings()

	a.versionCmd = a.Command("version", "Print the version.")

	return a
}

func (a *app) run(ctx context.Context, args []string) error {
	command, err := a.Parse(args)
	if err != nil {
		return err
	}

	switch command {
	case a.serveCmd.FullCommand():
		return a.serve(ctx)
	case a.processCmd.FullCommand():
		return a.process()
	case a.queryCmd.FullCommand():
		return a.query(ctx)
	case a.versionCmd.FullCommand():
		fmt.Fprintf(a.out, "intervald %s\n", server.Version)
		return nil
	}
	return fmt.Errorf("unknown command %q", command)
}

func (a *app) loadConfig() (*config.Config, string, error) {
	if *a.configPath != "" {
		cfg, err := config.Load(*a.configPath)
		return cfg, *a.configPath, err
	}

	path, err := config.DefaultPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.LoadDefault()
	return cfg, path, err
}

func (a *app) serve(ctx context.Context) error {
	cfg, path, err := a.loadConfig()
	if err != nil {
		return err
	}
	if *a.port != 0 {
		cfg.Server.Port = *a.port
	}

	if err := server.ConfigureLogger(a.log, &cfg.Server); err != nil {
		return err
	}

	srv, err := server.New(&cfg.Server, service.New(a.log), a.log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *a.watch {
		go func() {
			err := config.Watch(ctx, path, func(updated *config.Config) {
				srv.Reload(&updated.Server)
			})
			if err != nil {
				a.log.WithError(err).Warn("configuration watching disabled")
			}
		}()
	}

	return srv.Run(ctx)
}

func (a *app) print(resp *payload.IntervalResponse, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	for _, r := range resp.Result {
		fmt.Fprintln(a.out, r)
	}
	return nil
}

func (a *app) process() error {
	req := payload.NewIntervalRequest().Include(*a.processIncludes...).Exclude(*a.processExcludes...)

	resp, err := service.New(a.log).Process(req)
	if err != nil {
		return err
	}
	return a.print(resp, *a.processJSON)
}

func (a *app) query(ctx context.Context) error {
	var client *intervals.Client
	if *a.queryProfile != "" {
		var err error
		client, err = intervals.NewFromProfile(*a.queryProfile)
		if err != nil {
			return err
		}
	} else {
		client = intervals.New(*a.queryHost)
	}

	req := payload.NewIntervalRequest().Include(*a.queryIncludes...).Exclude(*a.queryExcludes...)
	resp, err := client.Process(ctx, req)
	if err != nil {
		return errors.Wrap(err, "query failed")
	}
	return a.print(resp, false)
}

func main() {
	a := newApp(os.Stdout)
	if err := a.run(context.Background(), os.Args[1:]); err != nil {
		if interval.IsInputError(err) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		a.log.WithError(err).Error("intervald failed")
		os.Exit(2)
	}
}
