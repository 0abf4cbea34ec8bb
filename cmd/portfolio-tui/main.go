package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/dafibh/fortuna/portfolio-backend/internal/client"
	"github.com/dafibh/fortuna/portfolio-backend/internal/tui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		configFile string
		apiURL     string
		token      string
		locale     string
		logLevel   string
		saveConfig bool
	)

	flag.StringVar(&configFile, "config", "", "path to config file (default: XDG config dir)")
	flag.StringVar(&apiURL, "url", "", "API base URL, overrides config")
	flag.StringVar(&token, "token", "", "bearer token, overrides config and "+tui.TokenEnv)
	flag.StringVar(&locale, "locale", "", "locale for numbers and text, e.g. en-US")
	flag.StringVar(&logLevel, "log-level", "info", "log level")
	flag.BoolVar(&saveConfig, "save-config", false, "write the effective config and exit")
	flag.Parse()

	// The terminal is owned by tview, so logs go to a file
	logFile, err := xdg.StateFile("portfolio-tui/portfolio-tui.log")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve log file: %v\n", err)
		os.Exit(1)
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %v: %v\n", logFile, err)
		os.Exit(1)
	}
	defer f.Close()

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(f).With().Timestamp().Logger()

	conf, path, err := tui.LoadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if apiURL != "" {
		conf.APIURL = apiURL
	}
	if token != "" {
		conf.Token = token
	}
	if locale != "" {
		conf.Locale = locale
	}

	if saveConfig {
		if err := tui.SaveConfig(path, conf); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Println(path)
		return
	}

	if conf.Token == "" {
		fmt.Fprintf(os.Stderr, "no token configured: set %v, pass -token, or add it to %v\n", tui.TokenEnv, path)
		os.Exit(1)
	}

	translations, err := tui.LoadTranslations(conf.Locale)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load translations")
	}

	log.Info().Str("api_url", conf.APIURL).Str("config", path).Msg("Starting portfolio TUI")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	timezone := conf.ResolveTimezone()
	if timezone == "" && (conf.Timezone != "" || os.Getenv("TZ") != "") {
		log.Warn().Str("timezone", conf.Timezone).Msg("Ignoring unknown time zone, greeting will use UTC")
	}
	api := client.New(conf.APIURL, conf.Token).WithTimezone(timezone)
	app := tui.NewApp(api, translations, tui.NewFormatter(conf.Locale), log.Logger)

	refresh := time.Duration(conf.RefreshSeconds) * time.Second
	if err := app.Run(ctx, refresh); err != nil {
		log.Error().Err(err).Msg("TUI exited with error")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
