package controllers

import (
	"encoding/csv"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"ugc-monitor/services"
)

// DashboardController serves aggregate stats, search logs and the CSV export.
type DashboardController struct {
	Videos   *services.VideoService
	Logs     *services.SearchLogService
	Notifier *services.Notifier
}

func NewDashboardController(videos *services.VideoService, logs *services.SearchLogService, notifier *services.Notifier) *DashboardController {
	return &DashboardController{Videos: videos, Logs: logs, Notifier: notifier}
}

func (dc *DashboardController) Stats(c *fiber.Ctx) error {
	var artistID *int
	if raw := c.Query("artist_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid artist_id"})
		}
		artistID = &id
	}
	stats, err := dc.Videos.Stats(c.Context(), artistID)
	if err != nil {
		log.Printf("[Dashboard] stats failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

func (dc *DashboardController) SearchLogs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := dc.Logs.ListLogs(c.Context(), limit)
	if err != nil {
		log.Printf("[Dashboard] logs failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(logs)
}

// ExportCSV streams the current video list (honoring the same filters as the
// listing endpoint) as a CSV download.
func (dc *DashboardController) ExportCSV(c *fiber.Ctx) error {
	filters := services.VideoFilters{
		Keyword:  c.Query("keyword"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}
	if raw := c.Query("artist_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid artist_id"})
		}
		filters.ArtistID = &id
	}

	videos, err := dc.Videos.ListVideos(c.Context(), filters)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"video_id", "title", "channel_name", "video_url", "matched_keyword",
		"duration_sec", "status", "priority", "auto_flagged", "risk_score", "risk_level", "publish_date"})
	for _, v := range videos {
		_ = w.Write([]string{
			v.VideoID, v.Title, v.ChannelName, v.VideoURL, v.MatchedKeyword,
			strconv.Itoa(v.DurationSec), v.Status, v.Priority,
			strconv.FormatBool(v.AutoFlagged), strconv.Itoa(v.RiskScore),
			v.RiskLevel, v.PublishDate,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="videos_export.csv"`)
	return c.SendString(sb.String())
}

// TestNotification sends a test message through the configured alert URLs.
func (dc *DashboardController) TestNotification(c *fiber.Ctx) error {
	if err := dc.Notifier.Test("UGC Monitor notification test"); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"sent": true})
}
