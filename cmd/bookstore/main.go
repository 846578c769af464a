package main

import (
	"io"
	"os"

	"bookstore/internal/config"
	"bookstore/internal/events"
	"bookstore/internal/http/handlers"
	applog "bookstore/internal/log"
	"bookstore/internal/repos"
)

func main() {
	os.Exit(run(config.Load()))
}

// run wires the server and blocks until it stops. Startup failures are
// logged and reported as a non-zero code once deferred closes have run.
func run(cfg config.Config) int {
	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			applog.Error(nil, "logfile.open.fail", err, map[string]any{"path": cfg.LogFile})
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	applog.Setup(out, cfg.LogPretty)
	applog.Info(nil, "config.loaded", cfg.Fields())

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		applog.Error(nil, "db.open", err, nil)
		return 1
	}
	defer db.Close()

	if cfg.SeedDemo {
		seeded, err := repos.SeedDemo(db)
		if err != nil {
			applog.Error(nil, "db.seed", err, nil)
			return 1
		}
		if seeded {
			applog.Info(nil, "db.seeded", nil)
		}
	}

	var pub events.Publisher = events.Nop{}
	if cfg.RabbitURL != "" {
		r, err := events.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			// Orders still work without a broker.
			applog.Error(nil, "events.connect.fail", err, nil)
		} else {
			defer r.Close()
			pub = r
		}
	}

	app := handlers.NewApp(handlers.NewDeps(db, pub), handlers.Options{
		AccessLog:   true,
		RateLimit:   cfg.RateLimit,
		CORSOrigins: cfg.CORSOrigins,
	})

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port})
	if err := app.Listen(":" + cfg.Port); err != nil {
		applog.Error(nil, "server.listen", err, nil)
		return 1
	}
	return 0
}
