package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"ugc-monitor/detector"
	"ugc-monitor/rules"
	"ugc-monitor/services"
)

type VideoController struct {
	Videos *services.VideoService
}

func NewVideoController(videos *services.VideoService) *VideoController {
	return &VideoController{Videos: videos}
}

func (vc *VideoController) List(c *fiber.Ctx) error {
	filters := services.VideoFilters{
		Keyword:  c.Query("keyword"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}
	if raw := c.Query("artist_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid artist_id"})
		}
		filters.ArtistID = &id
	}
	if raw := c.Query("auto_flagged"); raw != "" {
		flagged, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid auto_flagged"})
		}
		filters.AutoFlagged = &flagged
	}

	videos, err := vc.Videos.ListVideos(c.Context(), filters)
	if err != nil {
		log.Printf("[Videos] list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(videos)
}

func (vc *VideoController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid video id"})
	}
	video, err := vc.Videos.GetVideo(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if video == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "video not found"})
	}
	return c.JSON(video)
}

func (vc *VideoController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid video id"})
	}
	var body struct {
		Status   string `json:"status"`
		Priority string `json:"priority"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if body.Status == "" && body.Priority == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "nothing to update"})
	}
	ok, err := vc.Videos.UpdateVideo(c.Context(), id, body.Status, body.Priority)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "video not found"})
	}
	return c.JSON(fiber.Map{"updated": true})
}

func (vc *VideoController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid video id"})
	}
	ok, err := vc.Videos.DeleteVideo(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "video not found"})
	}
	return c.JSON(fiber.Map{"deleted": true})
}

func (vc *VideoController) BatchUpdate(c *fiber.Ctx) error {
	var body struct {
		IDs      []int  `json:"ids"`
		Status   string `json:"status"`
		Priority string `json:"priority"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(body.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ids are required"})
	}
	count, err := vc.Videos.BatchUpdate(c.Context(), body.IDs, body.Status, body.Priority)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	log.Printf("[Videos] batch update: %d of %d changed", count, len(body.IDs))
	return c.JSON(fiber.Map{"updated": count})
}

func (vc *VideoController) BatchDelete(c *fiber.Ctx) error {
	var body struct {
		IDs []int `json:"ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(body.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ids are required"})
	}
	count, err := vc.Videos.BatchDelete(c.Context(), body.IDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	log.Printf("[Videos] batch delete: %d of %d removed", count, len(body.IDs))
	return c.JSON(fiber.Map{"deleted": count})
}

// Analyze runs the risk classifier on supplied video metadata without
// storing anything.
func (vc *VideoController) Analyze(c *fiber.Ctx) error {
	var body struct {
		Title       string `json:"title"`
		ChannelName string `json:"channel_name"`
		Description string `json:"description"`
		DurationSec int    `json:"duration_sec"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if body.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}
	a := detector.Assess(body.Title, body.ChannelName, body.Description, body.DurationSec)
	return c.JSON(fiber.Map{
		"risk_score":  a.RiskScore,
		"risk_level":  a.RiskLevel,
		"should_flag": a.ShouldFlag,
		"indicators":  a.Indicators,
		"reason":      a.Reason,
	})
}

// SmartScan re-runs the risk classifier over stored videos and raises flags
// on those now assessed as flaggable. Existing flags are never lowered.
func (vc *VideoController) SmartScan(c *fiber.Ctx) error {
	videos, err := vc.Videos.ListVideos(c.Context(), services.VideoFilters{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	analyzed, flagged := 0, 0
	for i := range videos {
		v := &videos[i]
		if v.AutoFlagged {
			continue
		}
		analyzed++
		a := detector.Assess(v.Title, v.ChannelName, v.Description, v.DurationSec)
		if !a.ShouldFlag {
			continue
		}
		if err := vc.Videos.MarkFlagged(c.Context(), v.ID, a.RiskScore, a.RiskLevel, a.Reason); err != nil {
			log.Printf("[Videos] smart scan: failed to flag video %d: %v", v.ID, err)
			continue
		}
		if priority := rules.RiskPriority(a.RiskLevel); rules.Rank(priority) > rules.Rank(v.Priority) {
			if _, err := vc.Videos.UpdateVideo(c.Context(), v.ID, "", priority); err != nil {
				log.Printf("[Videos] smart scan: failed to raise priority of video %d: %v", v.ID, err)
			}
		}
		flagged++
	}
	log.Printf("[Videos] smart scan: %d analyzed, %d newly flagged", analyzed, flagged)
	return c.JSON(fiber.Map{"analyzed": analyzed, "flagged": flagged})
}
