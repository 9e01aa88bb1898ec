package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v4/pgxpool"

	"ugc-monitor/config"
	"ugc-monitor/controllers"
	"ugc-monitor/eventhandlers"
	"ugc-monitor/services"
)

func main() {
	config.Load()

	if config.DatabaseURL == "" || config.YouTubeAPIKey == "" {
		log.Fatal("Please set DATABASE_URL and YOUTUBE_API_KEY environment variables")
	}

	ctx := context.Background()

	db, err := pgxpool.Connect(ctx, config.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer db.Close()
	fmt.Println("Connected to PostgreSQL")

	if err := createTables(db); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	youtubeService, err := services.NewYouTubeService(ctx, config.YouTubeAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize YouTube client: %v", err)
	}
	musicBrainzService := services.NewMusicBrainzService()

	videoService := services.NewVideoService(db)
	artistService := services.NewArtistService(db)
	keywordService := services.NewKeywordService(db)
	songService := services.NewSongService(db)
	ruleService := services.NewRuleService(db)
	logService := services.NewSearchLogService(db)
	notifier := services.NewNotifier(config.NotifyURL)

	alerts := []services.Alerter{notifier}
	if config.KafkaBroker != "" {
		publisher := eventhandlers.NewAlertPublisher([]string{config.KafkaBroker}, "critical_findings")
		defer publisher.Close()
		alerts = append(alerts, publisher)
	}

	scanService := services.NewScanService(youtubeService, videoService, ruleService, logService, alerts...)
	scheduler := services.NewScheduler(scanService, keywordService, songService)

	if config.KafkaBroker != "" {
		kafkaHandler := eventhandlers.NewKafkaHandler([]string{config.KafkaBroker}, "scan_requests", "ugc-monitor", scanService)
		go kafkaHandler.Start()
	}

	artistController := controllers.NewArtistController(artistService)
	keywordController := controllers.NewKeywordController(keywordService)
	songController := controllers.NewSongController(songService, artistService, musicBrainzService)
	ruleController := controllers.NewRuleController(ruleService)
	searchController := controllers.NewSearchController(scanService, keywordService, songService, scheduler)
	videoController := controllers.NewVideoController(videoService)
	dashboardController := controllers.NewDashboardController(videoService, logService, notifier)

	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/api/artists", artistController.List)
	app.Post("/api/artists", artistController.Create)
	app.Get("/api/artists/:id", artistController.Get)
	app.Put("/api/artists/:id", artistController.Update)
	app.Delete("/api/artists/:id", artistController.Delete)
	app.Post("/api/artists/bulk-import", artistController.BulkImport)

	app.Get("/api/keywords", keywordController.List)
	app.Post("/api/keywords", keywordController.Create)
	app.Put("/api/keywords/:id", keywordController.Update)
	app.Delete("/api/keywords/:id", keywordController.Delete)
	app.Post("/api/keywords/bulk-import", keywordController.BulkImport)
	app.Get("/api/keywords/template", keywordController.Template)

	app.Get("/api/songs", songController.List)
	app.Post("/api/songs", songController.Create)
	app.Put("/api/songs/:id", songController.SetActive)
	app.Delete("/api/songs/:id", songController.Delete)
	app.Post("/api/songs/bulk-import", songController.BulkImport)
	app.Post("/api/songs/fetch/:artistID", songController.FetchDiscography)

	app.Get("/api/auto-flag-rules", ruleController.List)
	app.Post("/api/auto-flag-rules", ruleController.Create)
	app.Put("/api/auto-flag-rules/:id", ruleController.SetActive)
	app.Delete("/api/auto-flag-rules/:id", ruleController.Delete)
	app.Post("/api/auto-flag-rules/install-recommended", ruleController.InstallRecommended)

	app.Post("/api/search", searchController.SearchKeywords)
	app.Post("/api/search/songs", searchController.SearchSongs)
	app.Post("/api/schedule", searchController.Schedule)
	app.Get("/api/schedule", searchController.ScheduleStatus)

	app.Get("/api/videos", videoController.List)
	app.Get("/api/videos/:id", videoController.Get)
	app.Put("/api/videos/:id", videoController.Update)
	app.Delete("/api/videos/:id", videoController.Delete)
	app.Post("/api/videos/batch-update", videoController.BatchUpdate)
	app.Post("/api/videos/batch-delete", videoController.BatchDelete)
	app.Post("/api/analyze-video", videoController.Analyze)
	app.Post("/api/smart-scan", videoController.SmartScan)

	app.Get("/api/stats", dashboardController.Stats)
	app.Get("/api/logs", dashboardController.SearchLogs)
	app.Get("/api/export/csv", dashboardController.ExportCSV)
	app.Post("/api/notifications/test", dashboardController.TestNotification)

	log.Fatal(app.Listen(":" + config.Port))
}

func createTables(db *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS artists (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			email TEXT,
			contact_person TEXT,
			notes TEXT,
			active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS videos (
			id SERIAL PRIMARY KEY,
			video_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			channel_name TEXT NOT NULL,
			channel_id TEXT,
			description TEXT,
			publish_date TEXT,
			thumbnail_url TEXT,
			video_url TEXT,
			matched_keyword TEXT,
			duration_sec INTEGER DEFAULT 0,
			status TEXT DEFAULT 'Pending',
			priority TEXT DEFAULT 'Medium',
			artist_id INTEGER REFERENCES artists(id) ON DELETE SET NULL,
			auto_flagged BOOLEAN DEFAULT FALSE,
			risk_score INTEGER DEFAULT 0,
			risk_level TEXT,
			risk_reason TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS keywords (
			id SERIAL PRIMARY KEY,
			keyword TEXT NOT NULL,
			active BOOLEAN DEFAULT TRUE,
			artist_id INTEGER REFERENCES artists(id) ON DELETE SET NULL,
			auto_flag BOOLEAN DEFAULT FALSE,
			priority TEXT DEFAULT 'Medium',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE (keyword, artist_id)
		);`,
		`CREATE TABLE IF NOT EXISTS songs (
			id SERIAL PRIMARY KEY,
			song_name TEXT NOT NULL,
			artist_name TEXT NOT NULL,
			active BOOLEAN DEFAULT TRUE,
			artist_id INTEGER REFERENCES artists(id) ON DELETE SET NULL,
			auto_flag BOOLEAN DEFAULT FALSE,
			priority TEXT DEFAULT 'Medium',
			duration_ms INTEGER DEFAULT 0,
			source TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE (song_name, artist_name)
		);`,
		`CREATE TABLE IF NOT EXISTS auto_flag_rules (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			conditions TEXT NOT NULL,
			action TEXT NOT NULL,
			active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS search_logs (
			id SERIAL PRIMARY KEY,
			keyword TEXT NOT NULL,
			results_count INTEGER DEFAULT 0,
			success BOOLEAN DEFAULT TRUE,
			error_message TEXT,
			artist_id INTEGER REFERENCES artists(id) ON DELETE SET NULL,
			timestamp TIMESTAMPTZ DEFAULT NOW()
		);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(context.Background(), stmt); err != nil {
			return err
		}
	}
	return nil
}
