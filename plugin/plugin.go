// Package plugin is the exchange rate chat bot plugin. It registers a command
// for users and a tool for LLMs, both answering with plain text.
package plugin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/mitchellh/mapstructure"
	"go-exchange-rate-bot/alias"
	"go-exchange-rate-bot/exchangerate"
	"go-exchange-rate-bot/host"
	"go-exchange-rate-bot/quote"
)

const (
	// CommandName the user facing command
	CommandName = "汇率查询"
	// ToolName the LLM facing tool
	ToolName = "get_exchange_rate"
)

// Meta describes the plugin to the host.
var Meta = host.Metadata{
	Name:        "exchange_rate",
	Author:      "w33d",
	Description: "汇率查询机器人插件",
	Version:     "1.0.0",
	Repository:  "https://github.com/Last-emo-boy/astrbot_plugin_exchange_rate",
}

// Settings the plugin's options as handed over by the host.
type Settings struct {
	APIKey      string        `mapstructure:"apikey"`
	Locale      string        `mapstructure:"locale"`
	AliasesFile string        `mapstructure:"aliases_file"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Plugin answers exchange rate questions.
type Plugin struct {
	quotes    quote.Service
	formatter quote.Formatter
	logger    log.Logger
}

// New builds the plugin from the host's settings map.
// A missing apikey is only warned about; lookups will fail at the provider.
func New(settings map[string]any, logger log.Logger) (*Plugin, error) {
	var s Settings
	if err := decodeSettings(settings, &s); err != nil {
		return nil, fmt.Errorf("plugin settings: %w", err)
	}

	if strings.TrimSpace(s.APIKey) == "" {
		level.Warn(logger).Log("msg", "apikey is not configured, set apikey in the plugin config")
	}

	aliases := alias.Default()
	if s.AliasesFile != "" {
		extra, err := alias.LoadFile(s.AliasesFile)
		if err != nil {
			return nil, fmt.Errorf("plugin aliases: %w", err)
		}
		aliases = alias.Merge(aliases, extra)
		level.Debug(logger).Log("msg", "loaded aliases", "file", s.AliasesFile, "count", len(extra))
	}

	var rates exchangerate.Service
	rates = exchangerate.NewService(s.APIKey, exchangerate.WithBaseURL(s.BaseURL), exchangerate.WithTimeout(s.Timeout))
	rates = exchangerate.NewLoggingService(log.With(logger, "component", "exchangerate"), rates)

	formatter := quote.NewFormatter(s.Locale)

	var quotes quote.Service
	quotes = quote.NewService(aliases, rates, formatter)
	quotes = quote.NewLoggingService(log.With(logger, "component", "quote"), quotes)

	return &Plugin{
		quotes:    quotes,
		formatter: formatter,
		logger:    logger,
	}, nil
}

// Register registers the command and the tool with reg.
func (p *Plugin) Register(reg host.Registry) error {
	err := reg.RegisterCommand(CommandName, "查询汇率: "+CommandName+" <基础货币> [目标货币]", p.queryExchangeRate)
	if err != nil {
		return fmt.Errorf("register %v: %w", Meta.Name, err)
	}
	err = reg.RegisterTool(tool, p.getExchangeRate)
	if err != nil {
		return fmt.Errorf("register %v: %w", Meta.Name, err)
	}
	level.Info(p.logger).Log("msg", "registered plugin", "plugin", Meta.Name, "version", Meta.Version, "command", CommandName, "tool", ToolName)
	return nil
}

var tool = host.Tool{
	Name:        ToolName,
	Description: "Look up the current exchange rate between two currencies.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"base": map[string]any{
				"type":        "string",
				"description": "Base currency, a Chinese name (e.g. 美元) or an ISO code (e.g. USD).",
			},
			"target": map[string]any{
				"type":        "string",
				"description": "Target currency, a Chinese name (e.g. 欧元) or an ISO code (e.g. EUR).",
			},
		},
		"required": []string{"base", "target"},
	},
}

// queryExchangeRate handles "汇率查询 <base> [target]". Without a target
// every rate for base is listed.
func (p *Plugin) queryExchangeRate(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return p.formatter.Usage(CommandName), nil
	}
	base := args[0]
	if len(args) < 2 {
		return p.quotes.All(ctx, base), nil
	}
	return p.quotes.Rate(ctx, base, args[1]), nil
}

func (p *Plugin) getExchangeRate(ctx context.Context, args map[string]any) (string, error) {
	base, err := host.RequiredString(args, "base")
	if err != nil {
		return "", err
	}
	target, err := host.RequiredString(args, "target")
	if err != nil {
		return "", err
	}
	return p.quotes.Rate(ctx, base, target), nil
}

func decodeSettings(input map[string]any, out *Settings) error {
	cfg := &mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		MatchName: func(mapKey, fieldName string) bool {
			return normalizeKey(mapKey) == normalizeKey(fieldName)
		},
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func normalizeKey(value string) string {
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "_", "")
	value = strings.ReplaceAll(value, "-", "")
	return value
}
