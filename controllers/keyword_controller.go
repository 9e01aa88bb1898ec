package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"ugc-monitor/importer"
	"ugc-monitor/models"
	"ugc-monitor/services"
)

type KeywordController struct {
	Keywords *services.KeywordService
}

func NewKeywordController(keywords *services.KeywordService) *KeywordController {
	return &KeywordController{Keywords: keywords}
}

func (kc *KeywordController) List(c *fiber.Ctx) error {
	var artistID *int
	if raw := c.Query("artist_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid artist_id"})
		}
		artistID = &id
	}
	keywords, err := kc.Keywords.ListKeywords(c.Context(), artistID)
	if err != nil {
		log.Printf("[Keywords] list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(keywords)
}

func (kc *KeywordController) Create(c *fiber.Ctx) error {
	var k models.Keyword
	if err := c.BodyParser(&k); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if k.Keyword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "keyword is required"})
	}
	id, err := kc.Keywords.AddKeyword(c.Context(), &k)
	if err != nil {
		log.Printf("[Keywords] create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if id == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "keyword already exists"})
	}
	log.Printf("[Keywords] added keyword %q (id %d)", k.Keyword, id)
	return c.Status(fiber.StatusCreated).JSON(k)
}

func (kc *KeywordController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid keyword id"})
	}
	var u services.KeywordUpdate
	if err := c.BodyParser(&u); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	ok, err := kc.Keywords.UpdateKeyword(c.Context(), id, u)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "keyword not found"})
	}
	return c.JSON(fiber.Map{"updated": true})
}

func (kc *KeywordController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid keyword id"})
	}
	ok, err := kc.Keywords.DeleteKeyword(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "keyword not found"})
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// BulkImport accepts a CSV upload with keyword/auto_flag/priority columns.
func (kc *KeywordController) BulkImport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing CSV file upload"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer f.Close()

	keywords, err := importer.ParseKeywordsCSV(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	res := kc.Keywords.BulkAddKeywords(c.Context(), keywords)
	log.Printf("[Keywords] bulk import: %d added, %d skipped, %d errors", res.Added, res.Skipped, len(res.Errors))
	return c.JSON(res)
}

// Template serves a downloadable example CSV for the bulk import.
func (kc *KeywordController) Template(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="keywords_template.csv"`)
	return c.SendString(importer.KeywordTemplate())
}
