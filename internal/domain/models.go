package domain

// Wire types shared by the client core and the dev backend. All money
// fields are integer minor currency units (cents).

type Video struct {
	ID           string   `json:"id"`
	URL          string   `json:"url"`
	ThumbURL     string   `json:"thumb_url,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	LikeCount    int      `json:"like_count"`
	CommentCount int      `json:"comment_count"`
}

type MenuItem struct {
	ID           string   `json:"id"`
	RestaurantID string   `json:"restaurant_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	PriceCents   int      `json:"price_cents"`
	ImageURL     string   `json:"image_url,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

type Restaurant struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	LogoURL          string `json:"logo_url,omitempty"`
	DeliveryEtaMin   int    `json:"delivery_eta_min"`
	DeliveryEtaMax   int    `json:"delivery_eta_max"`
	DeliveryFeeCents int    `json:"delivery_fee_cents"`
}

// OrderItem is one cart line. Name and price are copied from the menu
// item at the moment it is added, so later catalog changes never move a
// line that is already in the cart.
type OrderItem struct {
	MenuItemID         string `json:"menu_item_id"`
	NameSnapshot       string `json:"name_snapshot"`
	PriceCentsSnapshot int    `json:"price_cents_snapshot"`
	Quantity           int    `json:"quantity"`
}

type Order struct {
	ID               string      `json:"id"`
	UserID           string      `json:"user_id"`
	RestaurantID     string      `json:"restaurant_id"`
	Status           string      `json:"status"`
	Items            []OrderItem `json:"items"`
	SubtotalCents    int         `json:"subtotal_cents"`
	DeliveryFeeCents int         `json:"delivery_fee_cents"`
	TotalCents       int         `json:"total_cents"`
	EtaMinutes       int         `json:"eta_minutes"`
}

// OrderOptions is the per-video recommendation bundle. It is scoped to
// exactly one video id and must be discarded when the active video changes.
type OrderOptions struct {
	VideoID        string       `json:"video_id"`
	Intent         string       `json:"intent"`
	TopRestaurants []Restaurant `json:"top_restaurants"`
	Prefill        []OrderItem  `json:"prefill"`
	SuggestedItems []MenuItem   `json:"suggested_items"`
}

type Address struct {
	Line1 string `json:"line1"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

type Profile struct {
	UserID              string  `json:"user_id"`
	Name                string  `json:"name"`
	CreditsBalanceCents int     `json:"credits_balance_cents"`
	DefaultAddress      Address `json:"default_address"`
}

// OrderHistory is the envelope returned by GET /orders/history.
type OrderHistory struct {
	Orders []Order `json:"orders"`
}

// IntentResult is the reply of the LLM text and voice endpoints.
type IntentResult struct {
	Intent         string       `json:"intent"`
	TopRestaurants []Restaurant `json:"top_restaurants"`
}

// RestaurantBlock groups recommended menu items under one restaurant.
type RestaurantBlock struct {
	RestaurantID   string     `json:"restaurant_id"`
	RestaurantName string     `json:"restaurant_name"`
	Items          []MenuItem `json:"items"`
	AvgPriceCents  int        `json:"avg_price_cents"`
	MenuURL        string     `json:"menu_url,omitempty"`
}

type RecommendResult struct {
	Recommendations []RestaurantBlock `json:"recommendations"`
}

type ConfirmResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
