package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/fitlog/internal/config"
	"github.com/sadopc/fitlog/internal/importer"
	"github.com/sadopc/fitlog/internal/logging"
	"github.com/sadopc/fitlog/internal/quote"
	"github.com/sadopc/fitlog/internal/session"
	"github.com/sadopc/fitlog/internal/store"
	"github.com/sadopc/fitlog/internal/tui"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path for the TOML config file (default ~/.config/fitlog/config.toml)")
	email := flag.String("email", "", "email of the signed-in user, overrides the config file")
	importPath := flag.String("import", "", "import an exercise catalog JSON file and exit")
	flag.Parse()

	if *configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			fail("resolve config path", err)
		}
		*configPath = p
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail("load config", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   logging.FileName(cfg.LogsPath),
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
	})

	dbPath := cfg.DBPath
	if dbPath == "" {
		if dbPath, err = store.DefaultDBPath(); err != nil {
			fail("resolve database path", err)
		}
	}

	s, err := store.New(dbPath)
	if err != nil {
		fail("open database", err)
	}
	defer s.Close()

	if *importPath != "" {
		entries, err := importer.LoadFile(*importPath)
		if err != nil {
			s.Close()
			fail("read catalog", err)
		}
		n, err := s.ImportExercises(entries)
		if err != nil {
			s.Close()
			fail("import catalog", err)
		}
		logrus.WithFields(logrus.Fields{"file": *importPath, "exercises": n}).Info("catalog imported")
		fmt.Printf("imported %d exercises from %s\n", n, *importPath)
		return
	}

	userEmail := cfg.Email
	if *email != "" {
		userEmail = *email
	}

	app := tui.NewApp(s, tui.Options{
		Session:       session.New(userEmail),
		Quotes:        quote.New(nil),
		WindowDays:    cfg.WindowDays,
		TrendGroups:   cfg.TrendGroups,
		RecentVolumes: cfg.RecentVolumes,
		PageSize:      cfg.PageSize,
	})
	logrus.WithField("db", dbPath).Info("starting fitlog")

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		s.Close()
		fail("run", err)
	}
}

func fail(action string, err error) {
	logrus.WithError(err).Error(action)
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", action, err)
	os.Exit(1)
}
