package api

import (
	"context"

	"haaangry-client/internal/domain"
	"haaangry-client/internal/fixtures"
)

type textIntentRequest struct {
	UserText string `json:"user_text"`
}

type voiceIntentRequest struct {
	Transcript string `json:"transcript"`
}

type recommendRequest struct {
	VideoID string `json:"video_id"`
}

type confirmRequest struct {
	RestaurantID string           `json:"restaurant_id"`
	Item         domain.OrderItem `json:"item"`
}

// TextIntent classifies free-form "tell me what you want" text.
func (c *Client) TextIntent(ctx context.Context, userText string) *domain.IntentResult {
	return Do[domain.IntentResult](ctx, c, LLMText(), textIntentRequest{UserText: userText}, fixtures.None)
}

// VoiceIntent classifies a voice transcript.
func (c *Client) VoiceIntent(ctx context.Context, transcript string) *domain.IntentResult {
	return Do[domain.IntentResult](ctx, c, LLMVoice(), voiceIntentRequest{Transcript: transcript}, fixtures.None)
}

// RecipeLinks fetches recipe links related to a video, with an offline
// sample as fallback.
func (c *Client) RecipeLinks(ctx context.Context, videoID, title, description string) *domain.RecipeLinks {
	return Do[domain.RecipeLinks](ctx, c, Recipes(videoID, title, description), nil, fixtures.RecipesV1)
}

// RecommendBlocks fetches restaurant and menu recommendations for a video.
func (c *Client) RecommendBlocks(ctx context.Context, videoID string) *domain.RecommendResult {
	return Do[domain.RecommendResult](ctx, c, Recommend(), recommendRequest{VideoID: videoID}, fixtures.None)
}

// ConfirmItem sends a best-effort single-item acknowledgement.
func (c *Client) ConfirmItem(ctx context.Context, restaurantID string, item domain.OrderItem) *domain.ConfirmResult {
	return Do[domain.ConfirmResult](ctx, c, Confirm(), confirmRequest{RestaurantID: restaurantID, Item: item}, fixtures.None)
}
