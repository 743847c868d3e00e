package web

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	authapp "github.com/agrimap/market/internal/auth/app"
	authdomain "github.com/agrimap/market/internal/auth/domain"
	cartapp "github.com/agrimap/market/internal/cart/app"
	cartdomain "github.com/agrimap/market/internal/cart/domain"
	cartadapter "github.com/agrimap/market/internal/cart/infra/adapter"
	catalogapp "github.com/agrimap/market/internal/catalog/app"
	catalogdomain "github.com/agrimap/market/internal/catalog/domain"
	checkoutapp "github.com/agrimap/market/internal/checkout/app"
	checkoutdomain "github.com/agrimap/market/internal/checkout/domain"
	checkoutadapter "github.com/agrimap/market/internal/checkout/infra/adapter"
)

// --- catalog ---

type memProducts struct {
	mu   sync.Mutex
	byID map[string]catalogdomain.Product
	seq  int
}

func newMemProducts() *memProducts {
	return &memProducts{byID: map[string]catalogdomain.Product{}}
}

func (m *memProducts) Create(_ context.Context, p catalogdomain.Product) (catalogdomain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p.ID = fmt.Sprintf("prod-%d", m.seq)
	p.CreatedAt = time.Now().UTC()
	m.byID[p.ID] = p
	return p, nil
}

func (m *memProducts) Get(_ context.Context, id string) (catalogdomain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return catalogdomain.Product{}, catalogapp.ErrNotFound
	}
	return p, nil
}

func (m *memProducts) List(_ context.Context, filter catalogdomain.Filter) ([]catalogdomain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []catalogdomain.Product
	for _, p := range m.byID {
		if filter.Region != "" && p.Region != filter.Region {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memProducts) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.byID)), nil
}

// --- cart ---

type memLedger struct {
	mu    sync.Mutex
	lines map[string]cartdomain.CartLine
}

func newMemLedger() *memLedger {
	return &memLedger{lines: map[string]cartdomain.CartLine{}}
}

func ledgerKey(p cartdomain.Partition, productID string) string {
	if p.IsAuthenticated() {
		return "u:" + p.UserID + "|" + productID
	}
	return "g:" + p.SessionToken + "|" + productID
}

func (m *memLedger) AddQuantity(_ context.Context, p cartdomain.Partition, productID string, qty int) (cartdomain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := ledgerKey(p, productID)
	line, ok := m.lines[key]
	if !ok {
		line = cartdomain.CartLine{ID: key, Partition: p, ProductID: productID}
	}
	line.Quantity += qty
	m.lines[key] = line
	return line, nil
}

func (m *memLedger) SetQuantity(_ context.Context, p cartdomain.Partition, productID string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := ledgerKey(p, productID)
	line, ok := m.lines[key]
	if !ok {
		return cartapp.ErrNotFound
	}
	line.Quantity = qty
	m.lines[key] = line
	return nil
}

func (m *memLedger) DeleteLine(_ context.Context, p cartdomain.Partition, productID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := ledgerKey(p, productID)
	if _, ok := m.lines[key]; !ok {
		return 0, nil
	}
	delete(m.lines, key)
	return 1, nil
}

func (m *memLedger) ListLines(_ context.Context, p cartdomain.Partition) ([]cartdomain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []cartdomain.CartLine
	for _, line := range m.lines {
		if line.Partition == p {
			out = append(out, line)
		}
	}
	return out, nil
}

func (m *memLedger) DeletePartition(_ context.Context, p cartdomain.Partition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, line := range m.lines {
		if line.Partition == p {
			delete(m.lines, key)
		}
	}
	return nil
}

// --- auth ---

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]authdomain.User
	seq     int
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]authdomain.User{}}
}

func (m *memUsers) UpsertByEmail(_ context.Context, u authdomain.User) (authdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.byEmail[u.Email]; ok {
		return existing, nil
	}
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	m.byEmail[u.Email] = u
	return u, nil
}

func (m *memUsers) Get(_ context.Context, id string) (authdomain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return authdomain.User{}, authapp.ErrUnauthenticated
}

type memSessions struct {
	mu      sync.Mutex
	byToken map[string]authdomain.Session
}

func newMemSessions() *memSessions {
	return &memSessions{byToken: map[string]authdomain.Session{}}
}

func (m *memSessions) Create(_ context.Context, s authdomain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byToken[s.Token] = s
	return nil
}

func (m *memSessions) Get(_ context.Context, token string) (authdomain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byToken[token]
	if !ok {
		return authdomain.Session{}, authapp.ErrUnauthenticated
	}
	return s, nil
}

func (m *memSessions) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byToken, token)
	return nil
}

type fakeProvider struct {
	identities map[string]authapp.Identity
}

func (f *fakeProvider) Resolve(_ context.Context, id string) (authapp.Identity, error) {
	identity, ok := f.identities[id]
	if !ok {
		return authapp.Identity{}, authapp.ErrUnauthenticated
	}
	return identity, nil
}

// --- checkout ---

type fakeGateway struct {
	mu      sync.Mutex
	seq     int
	status  map[string]checkoutdomain.TransactionStatus
	event   checkoutapp.WebhookEvent
	badSig  bool
	created []checkoutapp.CreateSessionRequest
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{status: map[string]checkoutdomain.TransactionStatus{}}
}

func (f *fakeGateway) CreateSession(_ context.Context, req checkoutapp.CreateSessionRequest) (checkoutapp.GatewaySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("cs_test_%d", f.seq)
	f.status[id] = checkoutdomain.StatusPending
	f.created = append(f.created, req)
	return checkoutapp.GatewaySession{ID: id, URL: "https://gateway.example/" + id}, nil
}

func (f *fakeGateway) SessionStatus(_ context.Context, sessionID string) (checkoutdomain.TransactionStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status[sessionID], nil
}

func (f *fakeGateway) VerifyWebhook(_ []byte, _ string) (checkoutapp.WebhookEvent, error) {
	if f.badSig {
		return checkoutapp.WebhookEvent{}, checkoutapp.ErrInvalidWebhook
	}
	return f.event, nil
}

type memTxs struct {
	mu          sync.Mutex
	bySessionID map[string]checkoutdomain.PaymentTransaction
	seq         int
}

func newMemTxs() *memTxs {
	return &memTxs{bySessionID: map[string]checkoutdomain.PaymentTransaction{}}
}

func (m *memTxs) Create(_ context.Context, tx checkoutdomain.PaymentTransaction) (checkoutdomain.PaymentTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	tx.ID = fmt.Sprintf("tx-%d", m.seq)
	m.bySessionID[tx.GatewaySessionID] = tx
	return tx, nil
}

func (m *memTxs) GetBySessionID(_ context.Context, sessionID string) (checkoutdomain.PaymentTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.bySessionID[sessionID]
	if !ok {
		return checkoutdomain.PaymentTransaction{}, checkoutapp.ErrNotFound
	}
	return tx, nil
}

func (m *memTxs) UpdateStatus(_ context.Context, sessionID string, status checkoutdomain.TransactionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.bySessionID[sessionID]
	if !ok {
		return checkoutapp.ErrNotFound
	}
	tx.Status = status
	m.bySessionID[sessionID] = tx
	return nil
}

func (m *memTxs) MarkPaid(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx, ok := m.bySessionID[sessionID]
	if !ok {
		return false, checkoutapp.ErrNotFound
	}
	if tx.Status == checkoutdomain.StatusPaid {
		return false, nil
	}
	tx.Status = checkoutdomain.StatusPaid
	m.bySessionID[sessionID] = tx
	return true, nil
}

// --- assembly ---

type testEnv struct {
	router   *gin.Engine
	products *memProducts
	ledger   *memLedger
	gateway  *fakeGateway
	txs      *memTxs
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	products := newMemProducts()
	catalogSvc := catalogapp.NewService(products)

	ledger := newMemLedger()
	cartSvc := cartapp.NewService(ledger, cartadapter.NewCatalogServiceReader(catalogSvc), 4)

	provider := &fakeProvider{identities: map[string]authapp.Identity{
		"valid-provider-session": {Email: "farmer@example.com", Name: "Farmer"},
	}}
	authSvc := authapp.NewService(newMemUsers(), newMemSessions(), provider, time.Hour)

	gateway := newFakeGateway()
	txs := newMemTxs()
	checkoutSvc := checkoutapp.NewService(checkoutadapter.NewCartServiceReader(cartSvc), gateway, txs, "inr")

	router := NewRouter(RouterConfig{
		Catalog:  catalogSvc,
		Cart:     cartSvc,
		Auth:     authSvc,
		Checkout: checkoutSvc,
		Log:      log,
	})

	return &testEnv{
		router:   router,
		products: products,
		ledger:   ledger,
		gateway:  gateway,
		txs:      txs,
	}
}
