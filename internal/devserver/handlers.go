// Package devserver is a loopback implementation of the backend API the
// client core talks to, seeded from the bundled fixture data. It exists
// so the app can be exercised end-to-end with no production backend.
package devserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"haaangry-client/internal/domain"
	"haaangry-client/internal/fixtures"
)

type Handler struct {
	Store     OrderStore
	Cache     RecommendCache // optional
	Publisher OrderPublisher // optional
}

func NewHandler(store OrderStore, cache RecommendCache, publisher OrderPublisher) *Handler {
	return &Handler{Store: store, Cache: cache, Publisher: publisher}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "devserver",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getFeed(w http.ResponseWriter, r *http.Request) {
	videos := fixtures.Load[[]domain.Video](fixtures.Feed)
	if videos == nil {
		http.Error(w, "feed unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

func (h *Handler) getOrderOptions(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")
	if videoID == "" {
		http.Error(w, "video_id is required", http.StatusBadRequest)
		return
	}
	opts := fixtures.Load[domain.OrderOptions](fixtures.OrderOptionsV1)
	if opts == nil {
		http.Error(w, "options unavailable", http.StatusInternalServerError)
		return
	}
	opts.VideoID = videoID
	if title := r.URL.Query().Get("title"); title != "" {
		opts.Intent = "craving " + strings.ToLower(title)
	}
	writeJSON(w, http.StatusOK, opts)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if order.RestaurantID == "" || len(order.Items) == 0 {
		http.Error(w, "Invalid order payload", http.StatusBadRequest)
		return
	}

	// Totals are recomputed server-side so stored orders always satisfy
	// total == subtotal + fee.
	subtotal := 0
	for _, item := range order.Items {
		subtotal += item.PriceCentsSnapshot * item.Quantity
	}
	order.SubtotalCents = subtotal
	order.TotalCents = subtotal + order.DeliveryFeeCents

	order.ID = uuid.NewString()
	order.Status = "confirmed"
	if order.EtaMinutes == 0 {
		order.EtaMinutes = 30
	}

	if err := h.Store.Create(r.Context(), &order); err != nil {
		http.Error(w, "Failed to create order: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if h.Publisher != nil {
		if err := h.Publisher.PublishOrder(r.Context(), order); err != nil {
			log.Printf("WARNING: Failed to publish order %s: %v", order.ID, err)
		}
	}

	if png, err := generateOrderQRCode(order.ID); err == nil {
		if err := h.Store.SaveQRCode(r.Context(), order.ID, png); err != nil {
			log.Printf("WARNING: Failed to store QR code for order %s: %v", order.ID, err)
		}
	} else {
		log.Printf("WARNING: Failed to generate QR code: %v", err)
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrderHistory(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, domain.OrderHistory{Orders: orders})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	png, err := h.Store.QRCode(r.Context(), id)
	if errors.Is(err, ErrOrderNotFound) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(png) == 0 {
		if png, err = generateOrderQRCode(id); err != nil {
			http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
			return
		}
		if err := h.Store.SaveQRCode(r.Context(), id, png); err != nil {
			log.Printf("WARNING: Failed to cache regenerated QR code: %v", err)
		}
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func generateOrderQRCode(orderID string) ([]byte, error) {
	return qrcode.Encode("haaangry://orders/"+orderID, qrcode.Medium, 256)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	prof := fixtures.Load[domain.Profile](fixtures.Profile)
	if prof == nil {
		http.Error(w, "profile unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, prof)
}

func (h *Handler) getRecipes(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")
	if videoID == "" {
		http.Error(w, "video_id is required", http.StatusBadRequest)
		return
	}
	links := fixtures.Load[domain.RecipeLinks](fixtures.RecipesV1)
	if links == nil {
		http.Error(w, "recipes unavailable", http.StatusInternalServerError)
		return
	}
	links.VideoID = videoID
	if title := r.URL.Query().Get("title"); title != "" {
		links.Query = title + " recipe"
	}
	writeJSON(w, http.StatusOK, links)
}

type textIntentRequest struct {
	UserText string `json:"user_text"`
}

type voiceIntentRequest struct {
	Transcript string `json:"transcript"`
}

func (h *Handler) llmText(w http.ResponseWriter, r *http.Request) {
	var req textIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, classifyIntent(req.UserText))
}

func (h *Handler) llmVoice(w http.ResponseWriter, r *http.Request) {
	var req voiceIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, classifyIntent(req.Transcript))
}

func classifyIntent(text string) domain.IntentResult {
	intent := strings.ToLower(strings.TrimSpace(text))
	if intent == "" {
		intent = "surprise me"
	}
	result := domain.IntentResult{Intent: intent}
	if opts := fixtures.Load[domain.OrderOptions](fixtures.OrderOptionsV1); opts != nil {
		result.TopRestaurants = opts.TopRestaurants
	}
	return result
}

type recommendRequest struct {
	VideoID string `json:"video_id"`
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.VideoID == "" {
		http.Error(w, "video_id is required", http.StatusBadRequest)
		return
	}

	if h.Cache != nil {
		if cached, err := h.Cache.Get(r.Context(), req.VideoID); err == nil {
			writeJSON(w, http.StatusOK, cached)
			return
		} else if !errors.Is(err, ErrCacheMiss) {
			log.Printf("WARNING: recommend cache get: %v", err)
		}
	}

	result := buildRecommendations()
	if h.Cache != nil {
		if err := h.Cache.Set(r.Context(), req.VideoID, result); err != nil {
			log.Printf("WARNING: recommend cache set: %v", err)
		}
	}
	writeJSON(w, http.StatusOK, result)
}

// buildRecommendations groups the fixture's suggested items under their
// restaurants.
func buildRecommendations() *domain.RecommendResult {
	opts := fixtures.Load[domain.OrderOptions](fixtures.OrderOptionsV1)
	if opts == nil {
		return &domain.RecommendResult{Recommendations: []domain.RestaurantBlock{}}
	}

	byRestaurant := make(map[string][]domain.MenuItem)
	for _, item := range opts.SuggestedItems {
		byRestaurant[item.RestaurantID] = append(byRestaurant[item.RestaurantID], item)
	}

	blocks := []domain.RestaurantBlock{}
	for _, rest := range opts.TopRestaurants {
		items := byRestaurant[rest.ID]
		if len(items) == 0 {
			continue
		}
		sum := 0
		for _, it := range items {
			sum += it.PriceCents
		}
		blocks = append(blocks, domain.RestaurantBlock{
			RestaurantID:   rest.ID,
			RestaurantName: rest.Name,
			Items:          items,
			AvgPriceCents:  sum / len(items),
		})
	}
	return &domain.RecommendResult{Recommendations: blocks}
}

type confirmRequest struct {
	RestaurantID string           `json:"restaurant_id"`
	Item         domain.OrderItem `json:"item"`
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.RestaurantID == "" || req.Item.MenuItemID == "" {
		http.Error(w, "restaurant_id and item are required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, domain.ConfirmResult{
		Status:  "ok",
		Message: "Order for " + req.Item.NameSnapshot + " acknowledged",
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
