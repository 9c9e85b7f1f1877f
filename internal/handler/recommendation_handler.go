package handler

import (
	"go-shop-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RecommendationHandler struct {
	service service.RecommendationService
}

func NewRecommendationHandler(s service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: s}
}

// Get resolves recommendations through the tiered fallback chain.
// Identity comes from the bearer token when present, else from the
// user_id query param, else from session_id.
// GET /api/v1/recommendations?user_id=&session_id=&k=
func (h *RecommendationHandler) Get(c *fiber.Ctx) error {
	userID := optionalUserID(c)
	if userID == nil {
		if qid := c.QueryInt("user_id", 0); qid > 0 {
			id := uint(qid)
			userID = &id
		}
	}

	result, err := h.service.Recommend(
		c.Context(),
		userID,
		c.Query("session_id"),
		c.QueryInt("k", 0),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
