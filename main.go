package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/KNICEX/signal-tracker/internal/bot"
	"github.com/KNICEX/signal-tracker/internal/metrics"
	"github.com/KNICEX/signal-tracker/internal/repo"
	"github.com/KNICEX/signal-tracker/internal/schedule"
	"github.com/KNICEX/signal-tracker/internal/service/monitor"
	"github.com/KNICEX/signal-tracker/internal/service/notification"
	signalsvc "github.com/KNICEX/signal-tracker/internal/service/signal"
	"github.com/KNICEX/signal-tracker/internal/store"
	"github.com/KNICEX/signal-tracker/ioc"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func initViper() {

	// --config=./config/xxx.yaml
	file := pflag.String("config", "./config/config.yaml", "specify config file")
	pflag.Parse()

	viper.SetDefault("monitor.poll_interval_seconds", 7)
	viper.SetDefault("monitor.fetch_timeout_seconds", 10)
	viper.SetDefault("store.path", "signals.json")
	viper.SetDefault("db.dsn", "alerts.db")
	viper.SetDefault("metrics.addr", ":9100")

	viper.SetConfigFile(*file)
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s \n", err))
	}
}

func main() {
	initViper()

	db := ioc.InitDB()
	if err := repo.InitTables(db); err != nil {
		panic(err)
	}
	alertRepo := repo.NewAlertRepo(db)

	signalStore, err := store.NewSignalStore(viper.GetString("store.path"))
	if err != nil {
		panic(err)
	}

	priceSvc := ioc.InitPriceService()

	tgCfg := ioc.InitTelegramConfig()
	tgCli := ioc.InitTelegramClient(tgCfg)
	notifier := notification.NewTelegramNotifier(tgCli, tgCfg.ChannelId)

	signalService := signalsvc.NewService(signalStore, signalsvc.WithNotifier(notifier))

	priceMonitor := monitor.NewPriceMonitor(
		signalStore,
		priceSvc,
		alertRepo,
		monitor.WithNotifier(notifier),
		monitor.WithFetchTimeout(time.Duration(viper.GetInt("monitor.fetch_timeout_seconds"))*time.Second),
	)
	interval := time.Duration(viper.GetInt("monitor.poll_interval_seconds")) * time.Second
	runner := schedule.NewRunner(monitor.NewPriceMonitorTask(priceMonitor), interval)

	metricsSrv := metrics.Serve(viper.GetString("metrics.addr"))
	defer func() { _ = metricsSrv.Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go runner.Start(ctx)

	slog.Info("signal tracker started", "interval", interval, "store", viper.GetString("store.path"))

	commandBot := bot.NewBot(tgCli, signalService, tgCfg.AdminIds)
	commandBot.Start(ctx)
}
