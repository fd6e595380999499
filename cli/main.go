// Command cli runs one command or tool call of the exchange rate plugin and
// prints the reply.
//
//	cli 汇率查询 美元 欧元
//	cli -tool get_exchange_rate -arg base=USD -arg target=EUR
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-exchange-rate-bot/config"
	"go-exchange-rate-bot/host"
	"go-exchange-rate-bot/logging"
	"go-exchange-rate-bot/plugin"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (yaml, toml or json)")
	toolName := flag.String("tool", "", "call this tool instead of running a command")
	toolArgs := map[string]any{}
	flag.Func("arg", "tool argument as key=value, repeatable", func(s string) error {
		key, value, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return fmt.Errorf("expected key=value, got %q", s)
		}
		toolArgs[key] = value
		return nil
	})
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

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

	reply, err := run(context.Background(), router, *toolName, toolArgs, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Println(reply)
}

func run(ctx context.Context, router *host.Router, toolName string, toolArgs map[string]any, args []string) (string, error) {
	if toolName != "" {
		return router.CallTool(ctx, toolName, toolArgs)
	}
	if len(args) == 0 {
		return "", fmt.Errorf("usage: cli [-config file] %s <base> [target]", plugin.CommandName)
	}
	return router.Dispatch(ctx, strings.Join(args, " "))
}
