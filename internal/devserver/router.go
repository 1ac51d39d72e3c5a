package devserver

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/feed", h.getFeed).Methods("GET")
	r.HandleFunc("/order/options", h.getOrderOptions).Methods("GET")
	r.HandleFunc("/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/orders/history", h.getOrderHistory).Methods("GET")
	r.HandleFunc("/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/profile", h.getProfile).Methods("GET")
	r.HandleFunc("/recipes", h.getRecipes).Methods("GET")
	r.HandleFunc("/llm/text", h.llmText).Methods("POST")
	r.HandleFunc("/llm/voice", h.llmVoice).Methods("POST")
	r.HandleFunc("/recommend", h.recommend).Methods("POST")
	r.HandleFunc("/confirm", h.confirm).Methods("POST")
}

func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return cors.Default().Handler(r)
}
