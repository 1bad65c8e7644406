package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"paypal-multiparty/internal/core/domain"
	"paypal-multiparty/internal/core/ports"

	"github.com/google/uuid"
)

// --- In-Memory Account Repo ---

type inMemoryAccountRepo struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.MerchantAccount
}

func newInMemoryAccountRepo() *inMemoryAccountRepo {
	return &inMemoryAccountRepo{accounts: make(map[uuid.UUID]*domain.MerchantAccount)}
}

func (r *inMemoryAccountRepo) Create(ctx context.Context, a *domain.MerchantAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *inMemoryAccountRepo) GetByOrgID(ctx context.Context, orgID string) (*domain.MerchantAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.OrgID == orgID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryAccountRepo) GetByMerchantID(ctx context.Context, merchantID string) (*domain.MerchantAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.MerchantID == merchantID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryAccountRepo) Update(ctx context.Context, a *domain.MerchantAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.ID]; !ok {
		return fmt.Errorf("account %s not found", a.ID)
	}
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *inMemoryAccountRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("account %s not found", id)
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction // keyed by order id, unique
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{transactions: make(map[string]*domain.Transaction)}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[tx.OrderID]; ok {
		return fmt.Errorf("duplicate order_id %s", tx.OrderID)
	}
	cp := *tx
	r.transactions[tx.OrderID] = &cp
	return nil
}

func (r *inMemoryTransactionRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tx, ok := r.transactions[orderID]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (r *inMemoryTransactionRepo) UpsertByOrderID(ctx context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.transactions[tx.OrderID]; ok {
		existing.Status = tx.Status
		return nil
	}
	cp := *tx
	r.transactions[tx.OrderID] = &cp
	return nil
}

func (r *inMemoryTransactionRepo) UpdateStatusByOrderID(ctx context.Context, orderID string, status domain.TransactionStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.transactions[orderID]
	if !ok {
		return false, nil
	}
	tx.Status = status
	return true, nil
}

func (r *inMemoryTransactionRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Transaction
	for _, tx := range r.transactions {
		if tx.AccountID == accountID {
			out = append(out, *tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- In-Memory Subscription Repo ---

type inMemorySubscriptionRepo struct {
	mu   sync.RWMutex
	subs map[string]*domain.Subscription // keyed by remote subscription id
}

func newInMemorySubscriptionRepo() *inMemorySubscriptionRepo {
	return &inMemorySubscriptionRepo{subs: make(map[string]*domain.Subscription)}
}

func (r *inMemorySubscriptionRepo) Upsert(ctx context.Context, sub *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *sub
	if existing, ok := r.subs[sub.SubscriptionID]; ok {
		cp.ID = existing.ID
		cp.CreatedAt = existing.CreatedAt
	}
	r.subs[sub.SubscriptionID] = &cp
	return nil
}

func (r *inMemorySubscriptionRepo) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subs[subscriptionID]
	if !ok {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (r *inMemorySubscriptionRepo) ListByOrg(ctx context.Context, orgID string) ([]domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Subscription
	for _, sub := range r.subs {
		if sub.OrgID == orgID {
			out = append(out, *sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *inMemorySubscriptionRepo) ListRecent(ctx context.Context, limit int) ([]domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Subscription
	for _, sub := range r.subs {
		out = append(out, *sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *inMemorySubscriptionRepo) UpdateStatus(ctx context.Context, subscriptionID string, status domain.SubscriptionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[subscriptionID]
	if !ok {
		return fmt.Errorf("subscription %s not found", subscriptionID)
	}
	sub.Status = status
	sub.UpdatedAt = time.Now()
	return nil
}

// --- In-Memory Webhook Event Repo ---

type inMemoryWebhookEventRepo struct {
	mu     sync.RWMutex
	events map[uuid.UUID]*domain.WebhookEvent
	seen   map[string]bool // event_id uniqueness, like the db constraint
}

func newInMemoryWebhookEventRepo() *inMemoryWebhookEventRepo {
	return &inMemoryWebhookEventRepo{
		events: make(map[uuid.UUID]*domain.WebhookEvent),
		seen:   make(map[string]bool),
	}
}

func (r *inMemoryWebhookEventRepo) Insert(ctx context.Context, event *domain.WebhookEvent) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen[event.EventID] {
		return false, nil
	}
	r.seen[event.EventID] = true
	cp := *event
	r.events[event.ID] = &cp
	return true, nil
}

func (r *inMemoryWebhookEventRepo) GetByEventID(ctx context.Context, eventID string) (*domain.WebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.events {
		if e.EventID == eventID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryWebhookEventRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.EventProcessingStatus, lastError *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return fmt.Errorf("event %s not found", id)
	}
	e.Status = status
	e.LastError = lastError
	return nil
}

func (r *inMemoryWebhookEventRepo) ListByStatus(ctx context.Context, status domain.EventProcessingStatus, limit int) ([]domain.WebhookEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.WebhookEvent
	for _, e := range r.events {
		if e.Status == status {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- Fake PayPal Gateway ---

// fakeGateway is a scripted stand-in for the REST client. Orders and
// subscriptions created through it are remembered so later lookups and
// captures resolve; signature verification always passes.
type fakeGateway struct {
	mu            sync.Mutex
	orderSeq      int
	subSeq        int
	planSeq       int
	orders        map[string]*ports.OrderSnapshot
	subscriptions map[string]*ports.SubscriptionSnapshot
	plans         map[string]*ports.PlanSnapshot
}

var _ ports.PayPalGateway = (*fakeGateway)(nil)

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		orders:        make(map[string]*ports.OrderSnapshot),
		subscriptions: make(map[string]*ports.SubscriptionSnapshot),
		plans:         make(map[string]*ports.PlanSnapshot),
	}
}

func (g *fakeGateway) CreateOrder(ctx context.Context, params ports.CreateOrderParams) (*ports.OrderSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orderSeq++
	id := fmt.Sprintf("ORDER-%d", g.orderSeq)
	snap := &ports.OrderSnapshot{
		ID:         id,
		Status:     "CREATED",
		Intent:     "CAPTURE",
		ApproveURL: "https://www.sandbox.paypal.com/checkoutnow?token=" + id,
	}
	g.orders[id] = snap
	return snap, nil
}

func (g *fakeGateway) GetOrder(ctx context.Context, orderID string) (*ports.OrderSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap, ok := g.orders[orderID]
	if !ok {
		return nil, remoteRejection{status: 404, message: "RESOURCE_NOT_FOUND"}
	}
	return snap, nil
}

func (g *fakeGateway) CaptureOrder(ctx context.Context, orderID string) (*ports.CaptureSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap, ok := g.orders[orderID]
	if !ok {
		return nil, remoteRejection{status: 404, message: "RESOURCE_NOT_FOUND"}
	}
	snap.Status = "COMPLETED"
	fee := ports.Money{Value: "5.00", CurrencyCode: "USD"}
	email := "buyer@example.com"
	return &ports.CaptureSnapshot{
		OrderID:     orderID,
		CaptureID:   "CAP-" + orderID,
		Status:      "COMPLETED",
		Amount:      ports.Money{Value: "100.00", CurrencyCode: "USD"},
		PlatformFee: &fee,
		BuyerEmail:  &email,
		Raw:         []byte(`{"status":"COMPLETED"}`),
	}, nil
}

func (g *fakeGateway) CreateSubscription(ctx context.Context, params ports.CreateSubscriptionParams) (*ports.SubscriptionSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subSeq++
	id := fmt.Sprintf("I-SUB%d", g.subSeq)
	snap := &ports.SubscriptionSnapshot{
		ID:         id,
		PlanID:     params.PlanID,
		Status:     "APPROVAL_PENDING",
		CustomID:   params.CustomID,
		ApproveURL: "https://www.sandbox.paypal.com/webapps/billing/subscriptions?ba_token=" + id,
	}
	g.subscriptions[id] = snap
	return snap, nil
}

func (g *fakeGateway) GetSubscription(ctx context.Context, subscriptionID string) (*ports.SubscriptionSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap, ok := g.subscriptions[subscriptionID]
	if !ok {
		return nil, remoteRejection{status: 404, message: "RESOURCE_NOT_FOUND"}
	}
	return snap, nil
}

func (g *fakeGateway) CancelSubscription(ctx context.Context, subscriptionID string, reason string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap, ok := g.subscriptions[subscriptionID]
	if !ok {
		return remoteRejection{status: 404, message: "RESOURCE_NOT_FOUND"}
	}
	snap.Status = "CANCELLED"
	return nil
}

func (g *fakeGateway) ListSubscriptions(ctx context.Context, shape ports.SubscriptionListShape) ([]ports.SubscriptionSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []ports.SubscriptionSnapshot
	for _, snap := range g.subscriptions {
		out = append(out, *snap)
	}
	return out, nil
}

func (g *fakeGateway) CreatePlan(ctx context.Context, params ports.PlanBillingParams) (*ports.PlanSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.planSeq++
	id := fmt.Sprintf("P-PLAN%d", g.planSeq)
	price := params.Price
	interval := params.Interval
	snap := &ports.PlanSnapshot{
		ID:          id,
		Name:        params.ProductName,
		Description: params.Description,
		Status:      "ACTIVE",
		Price:       &price,
		Interval:    &interval,
	}
	g.plans[id] = snap
	return snap, nil
}

func (g *fakeGateway) GetPlan(ctx context.Context, planID string) (*ports.PlanSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap, ok := g.plans[planID]
	if !ok {
		return nil, remoteRejection{status: 404, message: "RESOURCE_NOT_FOUND"}
	}
	return snap, nil
}

func (g *fakeGateway) ListPlans(ctx context.Context) ([]ports.PlanSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []ports.PlanSnapshot
	for _, snap := range g.plans {
		out = append(out, *snap)
	}
	return out, nil
}

func (g *fakeGateway) CreateWebhook(ctx context.Context, notificationURL string, eventTypes []string) (string, error) {
	return "WH-FAKE", nil
}

func (g *fakeGateway) VerifyWebhookSignature(ctx context.Context, params ports.WebhookVerifyParams) (bool, error) {
	return params.TransmissionSig != "tampered", nil
}

// activateSubscription flips a remembered subscription to ACTIVE, the
// way a buyer approval would.
func (g *fakeGateway) activateSubscription(subscriptionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if snap, ok := g.subscriptions[subscriptionID]; ok {
		snap.Status = "ACTIVE"
		amount := ports.Money{Value: "15.00", CurrencyCode: "USD"}
		snap.LastPaymentAmount = &amount
	}
}

// remoteRejection implements ports.RemoteRejection.
type remoteRejection struct {
	status  int
	message string
}

func (e remoteRejection) Error() string {
	return fmt.Sprintf("remote rejection %d: %s", e.status, e.message)
}
func (e remoteRejection) RemoteStatus() int     { return e.status }
func (e remoteRejection) RemoteMessage() string { return e.message }
