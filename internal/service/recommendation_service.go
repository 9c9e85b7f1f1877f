package service

import (
	"context"
	"log"
	"strconv"
	"time"

	"go-shop-api/internal/apperr"
	"go-shop-api/internal/repository"
	"go-shop-api/pkg/recommender"
)

const (
	// SourceML tags results from the external scoring service.
	SourceML = "ml"
	// SourcePopular tags results from the 30-day popularity aggregate.
	SourcePopular = "db-popular"
	// SourceStatic tags results from the per-product static score column.
	SourceStatic = "db-score"

	defaultTopK      = 8
	popularityWindow = 30 * 24 * time.Hour
)

// Scorer is the external recommendation collaborator. pkg/recommender
// implements it over HTTP.
type Scorer interface {
	Recommend(ctx context.Context, identity string, k int) ([]recommender.Item, error)
}

// RecommendationResult carries the winning tier's tag and its ranking.
type RecommendationResult struct {
	Source          string                     `json:"source"`
	Recommendations []repository.ScoredProduct `json:"recommendations"`
}

type RecommendationService interface {
	Recommend(ctx context.Context, userID *uint, sessionID string, k int) (*RecommendationResult, error)
}

type recommendationService struct {
	scorer      Scorer
	productRepo repository.ProductRepository
}

func NewRecommendationService(scorer Scorer, productRepo repository.ProductRepository) RecommendationService {
	return &recommendationService{
		scorer:      scorer,
		productRepo: productRepo,
	}
}

// identity builds the scorer's identity key: the numeric user id when
// authenticated, "anon:<session>" otherwise.
func identity(userID *uint, sessionID string) string {
	if userID != nil {
		return strconv.FormatUint(uint64(*userID), 10)
	}
	if sessionID != "" {
		return "anon:" + sessionID
	}
	return "demo"
}

// Recommend tries the three tiers in strict order and returns the first
// that succeeds. Tier failures are swallowed locally; only a storage error
// in the final static tier propagates to the caller.
func (s *recommendationService) Recommend(ctx context.Context, userID *uint, sessionID string, k int) (*RecommendationResult, error) {
	if k < 1 {
		k = defaultTopK
	}

	// Tier 1: external scorer
	if s.scorer != nil {
		items, err := s.scorer.Recommend(ctx, identity(userID, sessionID), k)
		if err == nil {
			recs := make([]repository.ScoredProduct, 0, len(items))
			for _, it := range items {
				recs = append(recs, repository.ScoredProduct{ID: it.ID, Name: it.Name, Price: it.Price, Score: it.Score})
			}
			return &RecommendationResult{Source: SourceML, Recommendations: recs}, nil
		}
		log.Printf("ML service error: %v", err)
	}

	// Tier 2: 30-day popularity aggregate
	rows, err := s.productRepo.TopByPopularity(time.Now().Add(-popularityWindow), k)
	if err == nil && hasPopularity(rows) {
		return &RecommendationResult{Source: SourcePopular, Recommendations: rows}, nil
	}
	if err != nil {
		log.Printf("popularity fallback error: %v", err)
	}

	// Tier 3: static per-product score
	rows, err = s.productRepo.TopByStaticScore(k)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "failed to load recommendations")
	}
	return &RecommendationResult{Source: SourceStatic, Recommendations: rows}, nil
}

// hasPopularity reports whether any product saw events in the window.
// An all-zero aggregate means the tier has nothing to say.
func hasPopularity(rows []repository.ScoredProduct) bool {
	for _, r := range rows {
		if r.Score > 0 {
			return true
		}
	}
	return false
}
