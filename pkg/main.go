package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkg "github.com/treehollow/socialite/pkg/internal"
	"github.com/treehollow/socialite/pkg/internal/cache"
	"github.com/treehollow/socialite/pkg/internal/database"
	"github.com/treehollow/socialite/pkg/internal/fanout"
	"github.com/treehollow/socialite/pkg/internal/http"
	"github.com/treehollow/socialite/pkg/internal/services"
	"github.com/treehollow/socialite/pkg/internal/storage/postgres"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" ____             _       _ _ _\n/ ___|  ___   ___(_) __ _| (_) |_ ___\n\\___ \\ / _ \\ / __| |/ _` | | | __/ _ \\\n ___) | (_) | (__| | (_| | | | ||  __/\n|____/ \\___/ \\___|_|\\__,_|_|_|\\__\\___|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Socialite"), pkg.AppVersion)
	fmt.Printf("The social graph content engine\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Local cache
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing local cache.")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	bus := fanout.NewBus()
	interactor := services.NewInteractor(postgres.New(database.C), bus, nil)

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", func() {
		interactor.DoAutoDatabaseCleanup(context.Background())
	})
	quartz.Start()

	// Server
	go http.NewServer(interactor, bus).Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
