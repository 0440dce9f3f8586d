package main

import (
	"context"
	"os"
	
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/katatrina/notify-admin/api"
	"github.com/katatrina/notify-admin/internal/alert"
	"github.com/katatrina/notify-admin/internal/cache"
	db "github.com/katatrina/notify-admin/internal/db/sqlc"
	"github.com/katatrina/notify-admin/internal/delivery"
	"github.com/katatrina/notify-admin/internal/dispatcher"
	"github.com/katatrina/notify-admin/internal/event"
	"github.com/katatrina/notify-admin/internal/mailer"
	"github.com/katatrina/notify-admin/internal/monitor"
	"github.com/katatrina/notify-admin/internal/notification"
	"github.com/katatrina/notify-admin/internal/sms"
	"github.com/katatrina/notify-admin/internal/util"
	"github.com/katatrina/notify-admin/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	
	// Load configurations
	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file 😣")
	}
	
	log.Info().Msg("configurations loaded successfully ✅")
	
	// Create connection pool
	connPool, err := pgxpool.New(context.Background(), config.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to validate db connection string 😣")
	}
	
	pingErr := connPool.Ping(context.Background())
	if pingErr != nil {
		log.Fatal().Err(pingErr).Msg("failed to connect to db 😣")
	}
	log.Info().Msg("connected to db ✅")
	
	store := db.NewStore(connPool)
	
	redisDb := redis.NewClient(&redis.Options{
		Addr:     config.RedisServerAddress,
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	
	mailService, err := mailer.NewSMTPSender(mailer.Config{
		Host:        config.SMTPHost,
		Port:        config.SMTPPort,
		Username:    config.SMTPUsername,
		Password:    config.SMTPPassword,
		FromName:    config.SMTPFromName,
		FromAddress: config.SMTPFromAddress,
		UseSSL:      config.SMTPUseSSL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create mailer service 😣")
	}
	
	smsClient := sms.NewClient(sms.Config{
		BaseURL:   config.TextSMSBaseURL,
		APIKey:    config.TextSMSAPIKey,
		PartnerID: config.TextSMSPartnerID,
		SenderID:  config.TextSMSSenderID,
		Timeout:   config.TextSMSTimeout,
	})
	
	var alerter delivery.Alerter = alert.NopAlerter{}
	if config.AlertsEnabled() {
		discordAlerter, err := alert.NewDiscordAlerter(config.DiscordBotToken, config.DiscordChannelID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create discord alerter 😣")
		}
		alerter = discordAlerter
		log.Info().Msg("discord alerts enabled ✅")
	}
	
	templateCache := cache.NewTemplateCache(store, redisDb, config.TemplateCacheTTL)
	
	eventSender := event.NewSSEServer()
	go eventSender.Run()
	
	deliveryService := delivery.NewService(
		templateCache,
		dispatcher.NewDispatcher(mailService, smsClient),
		notification.NewRepository(store),
		store,
		delivery.WithPublisher(eventSender),
		delivery.WithAlerter(alerter),
		delivery.WithTemplatePolicy(delivery.TemplatePolicy(config.TemplateLookupPolicy)),
	)
	
	redisOpt := asynq.RedisClientOpt{
		Addr: config.RedisServerAddress,
	}
	taskDistributor := worker.NewTaskDistributor(redisOpt)
	taskInspector := worker.NewTaskInspector(redisOpt)
	
	runTaskProcessor(redisOpt, deliveryService)
	runBalanceMonitor(config, smsClient, alerter)
	
	server := api.NewServer(&config, store, redisDb, deliveryService, templateCache, taskDistributor, taskInspector, eventSender, smsClient)
	
	log.Info().Msgf("HTTP server listening on %s ✅", config.HTTPServerAddress)
	err = server.Start(config.HTTPServerAddress)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start HTTP server 😣")
	}
}

func runTaskProcessor(redisOpt asynq.RedisClientOpt, sender worker.BulkSender) {
	taskProcessor := worker.NewRedisTaskProcessor(redisOpt, sender)
	
	err := taskProcessor.Start()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start task processor 😣")
	}
	
	log.Info().Msg("task processor started ✅")
}

func runBalanceMonitor(config util.Config, smsClient *sms.Client, alerter monitor.Alerter) {
	balanceMonitor, err := monitor.NewBalanceMonitor(smsClient, alerter, config.SMSBalanceThreshold, config.SMSBalanceCheckInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create sms balance monitor 😣")
	}
	
	err = balanceMonitor.Start()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start sms balance monitor 😣")
	}
	
	log.Info().Msg("sms balance monitor started ✅")
}
