package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/server"
	refreshrepofake "github.com/jrsteele09/boutik-admin/token/refresh/repofake"
	unitsrepofake "github.com/jrsteele09/boutik-admin/units/repofake"
	fakeuserrepo "github.com/jrsteele09/boutik-admin/users/repofake"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "boutik.toml", "path to the TOML configuration file")
	seed := flag.Bool("seed", true, "seed demo owners and points of sale")
	flag.Parse()

	if err := run(*configPath, *seed); err != nil {
		log.Fatal().Err(err).Msg("Error running mock API")
	}
	log.Info().Msg("Server stopped")
}

func run(configPath string, seed bool) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	setupLogging(c)
	displayAppname(c.GetAppName())

	s, err := server.New(c, server.Repos{
		Users:   fakeuserrepo.NewFakeUserRepo(),
		Units:   unitsrepofake.NewFakeUnitsRepo(),
		Refresh: refreshrepofake.NewFakeRefreshTokenRepo(),
	})
	if err != nil {
		return err
	}
	if seed {
		if err := s.SeedDemoData(); err != nil {
			return err
		}
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: s, ReadHeaderTimeout: 10 * time.Second}
	errs := make(chan error, 1)
	go func() {
		errs <- listenAndServe(httpServer)
	}()

	select {
	case err := <-errs:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func setupLogging(c config.EnvConfig) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
