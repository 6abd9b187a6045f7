package main

import (
	"context"
	"os"
	"time"

	"github.com/giftofhope10-tech/gift-of-hope/external/paypal"
	"github.com/giftofhope10-tech/gift-of-hope/external/resend"
	"github.com/giftofhope10-tech/gift-of-hope/internal/db"
	"github.com/giftofhope10-tech/gift-of-hope/internal/repository"
	"github.com/giftofhope10-tech/gift-of-hope/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const campaignSweepInterval = time.Hour

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}

	ctx := context.Background()

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect")
	}
	defer pool.Close()

	if err := db.Init(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("database schema")
	}

	// ======================
	// EXTERNALS
	// ======================
	paypalClient, err := paypal.NewClient(cfg.PayPalClientID, cfg.PayPalClientSecret, cfg.PayPalMode)
	if err != nil {
		log.Fatal().Err(err).Msg("paypal client")
	}

	mailer := resend.NewMailer(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailReplyTo, cfg.EmailNotify)
	if !mailer.Enabled() {
		log.Warn().Msg("RESEND_API_KEY not set, receipts and notifications disabled")
	}

	// ======================
	// REPOSITORIES
	// ======================
	pendingOrderRepo := repository.NewPendingOrderRepository(pool)
	donationRepo := repository.NewDonationRepository(pool)
	campaignRepo := repository.NewCampaignRepository(pool)
	contactRepo := repository.NewContactRepository(pool)

	// ======================
	// SERVICES
	// ======================
	donationSvc := services.NewDonationService(
		pendingOrderRepo,
		donationRepo,
		campaignRepo,
		paypalClient,
		mailer,
		cfg.SettlementCurrency,
		log.With().Str("svc", "donation").Logger(),
	)
	campaignSvc := services.NewCampaignService(campaignRepo, log.With().Str("svc", "campaign").Logger())
	contactSvc := services.NewContactService(contactRepo, mailer, log.With().Str("svc", "contact").Logger())
	statsSvc := services.NewStatsService(donationRepo)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/api")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerOrderRoutes(e, donationSvc, cfg.PayPalClientID)
	registerCampaignRoutes(api, campaignSvc, cfg.CronSecret)
	registerContactRoutes(api, contactSvc, log.Logger)
	registerStatsRoutes(api, statsSvc)
	registerAdminRoutes(
		api,
		donationSvc,
		campaignSvc,
		contactSvc,
		[]byte(cfg.JWTSecret),
		cfg.AdminPasswordHash,
		cfg.Production,
	)

	// ======================
	// CAMPAIGN SWEEP
	// ======================
	go runCampaignSweep(ctx, campaignSvc)

	// ======================
	// SERVER
	// ======================
	log.Info().Str("port", cfg.Port).Str("paypal_mode", cfg.PayPalMode).Msg("starting")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// runCampaignSweep deletes ended campaigns every hour. The cleanup endpoint
// does the same on demand for external schedulers.
func runCampaignSweep(ctx context.Context, cs *services.CampaignService) {
	ticker := time.NewTicker(campaignSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := cs.DeleteExpired(ctx); err != nil {
				log.Error().Err(err).Msg("campaign sweep failed")
			}
		}
	}
}
