package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"careercompass/internal/app"
	"careercompass/internal/logging"
	"careercompass/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func main() {
	var (
		noTUI      bool
		debug      bool
		mock       bool
		configPath string
	)

	root := &cobra.Command{
		Use:     "compass",
		Short:   "Career Compass - AI career advisor",
		Long:    "Career Compass guides you through skill discovery, job search, and goal setting.\n\nRun without arguments for the TUI, or with --no-tui for a plain REPL.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = app.DefaultConfigPath()
			}
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cfg.LogPath == "" {
				cfg.LogPath = app.DefaultLogPath()
			}

			logger := logging.New(debug, cfg.LogPath)
			defer func() { _ = logger.Sync() }()

			application := app.NewApplication(cfg, logger, mock)

			if noTUI {
				return runREPL(application)
			}
			p := tea.NewProgram(tui.New(application), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	root.Flags().BoolVarP(&noTUI, "no-tui", "n", false, "Use a simple REPL instead of the TUI")
	root.Flags().BoolVar(&debug, "debug", false, "Log to stderr at debug level")
	root.Flags().BoolVar(&mock, "mock", false, "Run against a canned model for offline demos")
	root.Flags().StringVar(&configPath, "config", "", "Path to config file")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runREPL(application *app.Application) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	session := application.Sessions.Get("")
	ctrl := application.Controller

	fmt.Println("Career Compass 🧭  (/help for commands, /quit to exit)")
	fmt.Println()
	fmt.Println(ctrl.SelectStage(session, app.StageSkills))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("\n[%s] > ", session.Stage().Label())
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			return nil
		}

		turnCtx, turnCancel := context.WithTimeout(ctx, 90*time.Second)
		reply, handled := ctrl.ExecuteCommand(turnCtx, session, line)
		if !handled {
			reply = ctrl.HandleTurn(turnCtx, session, session.Stage(), line).Display
		}
		turnCancel()

		fmt.Println()
		fmt.Println(reply)
	}
}
