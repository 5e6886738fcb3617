package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"snippad/internal/config"
	"snippad/internal/i18n"
	"snippad/internal/logging"
	"snippad/internal/orchestrator"
	"snippad/internal/provider"
	"snippad/internal/repl"
	"snippad/internal/tui"
)

func main() {
	var (
		configPath string
		plain      bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config JSON/JSONC")
	flag.BoolVar(&plain, "plain", false, "Run the plain-terminal REPL instead of the TUI")
	flag.Parse()

	// .env 如存在则加载 / Loads .env file if present
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}

	i18n.Init(cfg.Locale)

	logger, closeLog, err := logging.New(logging.Options{Path: cfg.Log.Path, Level: cfg.Log.Level})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init log failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = closeLog() }()

	session := orchestrator.New(orchestrator.Options{
		DefaultLanguage: cfg.Session.DefaultLanguage,
		DefaultFilename: cfg.Session.DefaultFilename,
		Logger:          logger,
	})

	// buildGateway 由配置或运行期输入的 API Key 构建网关
	// buildGateway builds the gateway from the configured or runtime API key
	buildGateway := func(apiKey string) error {
		if apiKey == "" {
			return orchestrator.ErrNotConfigured
		}
		p := provider.NewOpenAIProvider(provider.OpenAIConfig{
			BaseURL:   cfg.Provider.BaseURL,
			APIKey:    apiKey,
			Model:     cfg.Provider.Model,
			TimeoutMS: cfg.Provider.TimeoutMS,
		}, logger)
		session.Configure(p)
		return nil
	}
	if cfg.Provider.APIKey != "" {
		if err := buildGateway(cfg.Provider.APIKey); err != nil {
			fmt.Fprintf(os.Stderr, "init gateway failed: %v\n", err)
			os.Exit(1)
		}
	}

	exportDir, err := os.Getwd()
	if err != nil {
		exportDir = "."
	}

	if plain {
		if err := runREPL(session, exportDir); err != nil {
			fmt.Fprintf(os.Stderr, "repl failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	app := tui.NewApp(session, buildGateway, cfg.Session.HistoryTokenLimit, exportDir)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui failed: %v\n", err)
		os.Exit(1)
	}
}

func runREPL(session *orchestrator.Session, exportDir string) error {
	historyPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, ".snippad", "repl.history")
	}
	in, inputErr := repl.NewLineInput(historyPath)
	if inputErr != nil {
		fmt.Fprintf(os.Stderr, "line editor unavailable, fallback to basic input: %v\n", inputErr)
	}
	defer in.Close()

	loop := repl.New(session, in, os.Stdout, os.Stderr, exportDir)
	return loop.Run(context.Background())
}
