package devserver

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"haaangry-client/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStore persists orders placed against the dev backend.
type OrderStore interface {
	Create(ctx context.Context, o *domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	SaveQRCode(ctx context.Context, id string, png []byte) error
	QRCode(ctx context.Context, id string) ([]byte, error)
}

// MemoryStore is the default storage: newest order first, no durability.
type MemoryStore struct {
	mu      sync.Mutex
	orders  []domain.Order
	qrCodes map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{qrCodes: make(map[string][]byte)}
}

func (m *MemoryStore) Create(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append([]domain.Order{*o}, m.orders...)
	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Order(nil), m.orders...), nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			found := o
			return &found, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (m *MemoryStore) SaveQRCode(_ context.Context, id string, png []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.qrCodes[id] = png
	return nil
}

func (m *MemoryStore) QRCode(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	png, ok := m.qrCodes[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return png, nil
}

var _ OrderStore = (*MemoryStore)(nil)

// PostgresStore keeps orders in the dev database when one is configured.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (p *PostgresStore) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			restaurant_id TEXT NOT NULL,
			status TEXT NOT NULL,
			subtotal_cents INT NOT NULL,
			delivery_fee_cents INT NOT NULL,
			total_cents INT NOT NULL,
			eta_minutes INT NOT NULL,
			qr_code BYTEA,
			created_at TIMESTAMP NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id TEXT NOT NULL,
			name_snapshot TEXT NOT NULL,
			price_cents_snapshot INT NOT NULL,
			quantity INT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := p.DB.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (p *PostgresStore) Create(ctx context.Context, o *domain.Order) error {
	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, restaurant_id, status, subtotal_cents, delivery_fee_cents, total_cents, eta_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, o.ID, o.UserID, o.RestaurantID, o.Status, o.SubtotalCents, o.DeliveryFeeCents, o.TotalCents, o.EtaMinutes); err != nil {
		return err
	}

	for _, item := range o.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name_snapshot, price_cents_snapshot, quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, o.ID, item.MenuItemID, item.NameSnapshot, item.PriceCentsSnapshot, item.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (p *PostgresStore) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := p.DB.QueryContext(ctx, `
		SELECT id, user_id, restaurant_id, status, subtotal_cents, delivery_fee_cents, total_cents, eta_minutes
		FROM orders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.RestaurantID, &o.Status,
			&o.SubtotalCents, &o.DeliveryFeeCents, &o.TotalCents, &o.EtaMinutes); err != nil {
			continue
		}
		o.Items, _ = p.listItems(ctx, o.ID)
		orders = append(orders, o)
	}
	return orders, nil
}

func (p *PostgresStore) listItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := p.DB.QueryContext(ctx, `
		SELECT menu_item_id, name_snapshot, price_cents_snapshot, quantity
		FROM order_items
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.MenuItemID, &it.NameSnapshot, &it.PriceCentsSnapshot, &it.Quantity); err != nil {
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

func (p *PostgresStore) Get(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := p.DB.QueryRowContext(ctx, `
		SELECT id, user_id, restaurant_id, status, subtotal_cents, delivery_fee_cents, total_cents, eta_minutes
		FROM orders WHERE id = $1
	`, id).Scan(&o.ID, &o.UserID, &o.RestaurantID, &o.Status,
		&o.SubtotalCents, &o.DeliveryFeeCents, &o.TotalCents, &o.EtaMinutes)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	o.Items, _ = p.listItems(ctx, id)
	return &o, nil
}

func (p *PostgresStore) SaveQRCode(ctx context.Context, id string, png []byte) error {
	_, err := p.DB.ExecContext(ctx, `UPDATE orders SET qr_code = $1 WHERE id = $2`, png, id)
	return err
}

func (p *PostgresStore) QRCode(ctx context.Context, id string) ([]byte, error) {
	var png []byte
	err := p.DB.QueryRowContext(ctx, `SELECT qr_code FROM orders WHERE id = $1`, id).Scan(&png)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return png, nil
}

var _ OrderStore = (*PostgresStore)(nil)
