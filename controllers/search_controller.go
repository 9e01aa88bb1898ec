package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"ugc-monitor/models"
	"ugc-monitor/services"
)

type SearchController struct {
	Scan      *services.ScanService
	Keywords  *services.KeywordService
	Songs     *services.SongService
	Scheduler *services.Scheduler
}

func NewSearchController(scan *services.ScanService, keywords *services.KeywordService, songs *services.SongService, scheduler *services.Scheduler) *SearchController {
	return &SearchController{Scan: scan, Keywords: keywords, Songs: songs, Scheduler: scheduler}
}

// SearchKeywords scans the given keywords, or every active keyword when the
// body names none.
func (sc *SearchController) SearchKeywords(c *fiber.Ctx) error {
	var body struct {
		Keywords []string `json:"keywords"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}
	keywords := body.Keywords
	if len(keywords) == 0 {
		var err error
		keywords, err = sc.Keywords.ActiveKeywords(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	if len(keywords) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no keywords to scan"})
	}

	log.Printf("[Search] scanning %d keyword(s)", len(keywords))
	summary := sc.Scan.ScanKeywords(c.Context(), keywords)
	log.Printf("[Search] keyword scan done: %d found, %d new", summary.TotalFound, summary.TotalNew)
	return c.JSON(summary)
}

// SearchSongs scans the given song/artist pairs, or the whole active catalog
// when the body names none.
func (sc *SearchController) SearchSongs(c *fiber.Ctx) error {
	var body struct {
		Songs []models.Song `json:"songs"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}
	songs := body.Songs
	if len(songs) == 0 {
		var err error
		songs, err = sc.Songs.ActiveSongs(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	if len(songs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no songs to scan"})
	}
	for _, s := range songs {
		if s.SongName == "" || s.ArtistName == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "each song needs song_name and artist_name"})
		}
	}

	log.Printf("[Search] scanning %d song(s)", len(songs))
	summary := sc.Scan.ScanSongs(c.Context(), songs)
	log.Printf("[Search] song scan done: %d found, %d new", summary.TotalFound, summary.TotalNew)
	return c.JSON(summary)
}

// Schedule enables or disables periodic automatic scans.
func (sc *SearchController) Schedule(c *fiber.Ctx) error {
	var body struct {
		Enabled       bool `json:"enabled"`
		IntervalHours int  `json:"interval_hours"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if body.Enabled {
		sc.Scheduler.Enable(body.IntervalHours)
	} else {
		sc.Scheduler.Disable()
	}
	enabled, interval := sc.Scheduler.Status()
	return c.JSON(fiber.Map{"enabled": enabled, "interval_hours": interval})
}

// ScheduleStatus reports the current automatic-scan schedule.
func (sc *SearchController) ScheduleStatus(c *fiber.Ctx) error {
	enabled, interval := sc.Scheduler.Status()
	return c.JSON(fiber.Map{"enabled": enabled, "interval_hours": interval})
}
