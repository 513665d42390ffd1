package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lslops/checklist-management/internal/alert"
	alertpg "github.com/lslops/checklist-management/internal/alert/postgres"
	"github.com/lslops/checklist-management/pkg/logger"

	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers, currently the non-compliance alert consumer.`,
}

var alertWorkerCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Start the non-compliance alert consumer",
	Long:  `Consume non-compliance events from the broker queue and email the sector manager and coordinators.`,
	Run: func(cmd *cobra.Command, args []string) {
		startAlertWorker()
	},
}

func startAlertWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.L()

	if !config.AMQP.Enabled() {
		log.Error("amqp url is not configured, alert worker cannot start")
		os.Exit(1)
	}
	if !config.SMTP.Enabled() {
		log.Error("smtp is not configured, alert worker cannot start")
		os.Exit(1)
	}

	db, err := initDB(config.Database)
	if err != nil {
		log.Error("failed to init db", "error", err)
		os.Exit(1)
	}

	dispatcher := alert.NewDispatcher(
		alertpg.NewAlertRepository(db),
		alertpg.NewRecipientRepository(db),
		alert.NewSMTPMailer(config.SMTP),
		log,
	)
	consumer := alert.NewConsumer(config.AMQP.URL, config.AMQP.Queue, dispatcher, log)

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("received signal, shutting down alert worker", "signal", sig)
		cancel()
	}()

	log.Info("alert worker is running", "queue", config.AMQP.Queue)
	consumer.Run(ctx)
	log.Info("alert worker stopped")
}

func init() {
	workerCmd.AddCommand(alertWorkerCmd)
}
