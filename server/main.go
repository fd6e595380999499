package main

import (
	"bytes"
	"flag"
	"os"

	"github.com/dimiro1/banner"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-exchange-rate-bot/config"
	"go-exchange-rate-bot/host"
	"go-exchange-rate-bot/http"
	"go-exchange-rate-bot/logging"
	"go-exchange-rate-bot/plugin"

	nhttp "net/http"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (yaml, toml or json)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.New(os.Stderr, "info").Log("msg", "loading config", "err", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)

	tpl := "{{ .Title \"RATES\" \"\" 0 }}\n" + plugin.Meta.Name + " " + plugin.Meta.Version + "\n"
	banner.Init(os.Stdout, true, false, bytes.NewBufferString(tpl))

	p, err := plugin.New(cfg.Settings(), log.With(logger, "component", "plugin"))
	if err != nil {
		level.Error(logger).Log("msg", "creating plugin", "err", err)
		os.Exit(1)
	}

	router := host.NewRouter()
	if err := p.Register(router); err != nil {
		level.Error(logger).Log("msg", "registering plugin", "err", err)
		os.Exit(1)
	}

	handler := http.NewServer(router, log.With(logger, "component", "http"))

	level.Info(logger).Log("msg", "listening", "addr", cfg.Listen)
	if err := nhttp.ListenAndServe(cfg.Listen, handler); err != nil {
		level.Error(logger).Log("msg", "http server stopped", "err", err)
		os.Exit(1)
	}
}
