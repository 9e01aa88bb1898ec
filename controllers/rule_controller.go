package controllers

import (
	"encoding/json"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"ugc-monitor/detector"
	"ugc-monitor/models"
	"ugc-monitor/rules"
	"ugc-monitor/services"
)

type RuleController struct {
	Rules *services.RuleService
}

func NewRuleController(ruleService *services.RuleService) *RuleController {
	return &RuleController{Rules: ruleService}
}

func (rc *RuleController) List(c *fiber.Ctx) error {
	all, err := rc.Rules.ListRules(c.Context())
	if err != nil {
		log.Printf("[Rules] list failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(all)
}

// Create accepts conditions either as a JSON object or a pre-serialized
// string, and validates them before storing.
func (rc *RuleController) Create(c *fiber.Ctx) error {
	var body struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Conditions  json.RawMessage `json:"conditions"`
		Action      string          `json:"action"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if body.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "rule name is required"})
	}
	switch body.Action {
	case models.ActionFlag, models.ActionHighPriority, models.ActionCritical:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown action"})
	}

	conditions := string(body.Conditions)
	var asString string
	if json.Unmarshal(body.Conditions, &asString) == nil {
		conditions = asString
	}
	if _, err := rules.DecodeConditions(conditions); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "conditions must be a JSON object"})
	}

	rule := models.AutoFlagRule{
		Name:        body.Name,
		Description: body.Description,
		Conditions:  conditions,
		Action:      body.Action,
	}
	id, err := rc.Rules.AddRule(c.Context(), &rule)
	if err != nil {
		log.Printf("[Rules] create failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if id == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "rule already exists"})
	}
	log.Printf("[Rules] added rule %q (id %d)", rule.Name, id)
	return c.Status(fiber.StatusCreated).JSON(rule)
}

func (rc *RuleController) SetActive(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid rule id"})
	}
	var body struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	ok, err := rc.Rules.SetRuleActive(c.Context(), id, body.Active)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "rule not found"})
	}
	return c.JSON(fiber.Map{"updated": true})
}

func (rc *RuleController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid rule id"})
	}
	ok, err := rc.Rules.DeleteRule(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "rule not found"})
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// InstallRecommended seeds the starter rule set; existing names are skipped.
func (rc *RuleController) InstallRecommended(c *fiber.Ctx) error {
	installed, skipped := 0, 0
	for _, rule := range detector.RecommendedRules() {
		r := rule
		id, err := rc.Rules.AddRule(c.Context(), &r)
		if err != nil {
			log.Printf("[Rules] failed to install %q: %v", r.Name, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if id == 0 {
			skipped++
		} else {
			installed++
		}
	}
	log.Printf("[Rules] recommended rules: %d installed, %d skipped", installed, skipped)
	return c.JSON(fiber.Map{"installed": installed, "skipped": skipped})
}
