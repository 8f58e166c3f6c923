package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/dreamlog-app/dreamlog/internal/application/payment/paymentgateway"
	"github.com/dreamlog-app/dreamlog/internal/domain/entitlement"
	"github.com/dreamlog-app/dreamlog/internal/domain/payment"
	"github.com/dreamlog-app/dreamlog/internal/domain/subscription"
)

type profileRow struct {
	email   string
	balance int
	status  entitlement.SubscriptionStatus
}

// memoryStore holds profiles and subscription records in memory.
// Records are copied on the way in and out so callers cannot mutate stored state.
type memoryStore struct {
	mu       sync.Mutex
	profiles map[string]*profileRow
	records  map[string]*subscription.Record

	upsertErr error
	writes    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		profiles: make(map[string]*profileRow),
		records:  make(map[string]*subscription.Record),
	}
}

func (s *memoryStore) addProfile(userID, email string, balance int, status entitlement.SubscriptionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[userID] = &profileRow{email: email, balance: balance, status: status}
}

func (s *memoryStore) addRecord(userID, customerID, subscriptionID, planName string) {
	rec, _ := subscription.ReconstructRecord(0, userID, customerID, subscriptionID, planName, nil, nil, time.Now(), time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[userID] = rec
}

func (s *memoryStore) profile(userID string) profileRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.profiles[userID]
}

func (s *memoryStore) record(userID string) *subscription.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[userID]; ok {
		return copyRecord(r)
	}
	return nil
}

func copyRecord(r *subscription.Record) *subscription.Record {
	c, _ := subscription.ReconstructRecord(
		r.ID(), r.UserID(), r.CustomerID(), r.SubscriptionID(), r.PlanName(),
		r.CurrentPeriodEnd(), r.LastEventPayload(), r.CreatedAt(), r.UpdatedAt(),
	)
	return c
}

// entitlement.Repository

type memoryProfiles struct{ s *memoryStore }

func (m memoryProfiles) Create(ctx context.Context, e *entitlement.Entitlement) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.profiles[e.UserID()]; !ok {
		m.s.profiles[e.UserID()] = &profileRow{email: e.Email(), balance: e.FreeInsightBalance(), status: e.Status()}
	}
	return nil
}

func (m memoryProfiles) GetByUserID(ctx context.Context, userID string) (*entitlement.Entitlement, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.profiles[userID]
	if !ok {
		return nil, entitlement.ErrEntitlementNotFound
	}
	return entitlement.ReconstructEntitlement(userID, p.email, "", p.balance, p.status, time.Now())
}

func (m memoryProfiles) DebitFreeInsight(ctx context.Context, userID string) (int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.profiles[userID]
	if !ok {
		return 0, entitlement.ErrEntitlementNotFound
	}
	if p.balance <= 0 {
		return 0, entitlement.ErrInsufficientBalance
	}
	p.balance--
	return p.balance, nil
}

func (m memoryProfiles) SetSubscriptionStatus(ctx context.Context, userID string, status entitlement.SubscriptionStatus) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.profiles[userID]
	if !ok {
		return entitlement.ErrEntitlementNotFound
	}
	p.status = status
	m.s.writes++
	return nil
}

func (m memoryProfiles) ResetFreeInsights(ctx context.Context, userID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.profiles[userID]
	if !ok {
		return entitlement.ErrEntitlementNotFound
	}
	p.balance = entitlement.InitialFreeInsightGrant
	m.s.writes++
	return nil
}

// subscription.Repository

type memorySubscriptions struct{ s *memoryStore }

func (m memorySubscriptions) GetByUserID(ctx context.Context, userID string) (*subscription.Record, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	r, ok := m.s.records[userID]
	if !ok {
		return nil, subscription.ErrRecordNotFound
	}
	return copyRecord(r), nil
}

func (m memorySubscriptions) GetByCustomerID(ctx context.Context, customerID string) (*subscription.Record, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, r := range m.s.records {
		if customerID != "" && r.CustomerID() == customerID {
			return copyRecord(r), nil
		}
	}
	return nil, subscription.ErrRecordNotFound
}

func (m memorySubscriptions) Upsert(ctx context.Context, r *subscription.Record) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.upsertErr != nil {
		return m.s.upsertErr
	}
	m.s.records[r.UserID()] = copyRecord(r)
	m.s.writes++
	return nil
}

// UpsertProcessorState keeps the stored audit payload of an existing record.
func (m memorySubscriptions) UpsertProcessorState(ctx context.Context, r *subscription.Record) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.upsertErr != nil {
		return m.s.upsertErr
	}
	payload := r.LastEventPayload()
	if existing, ok := m.s.records[r.UserID()]; ok {
		payload = existing.LastEventPayload()
	}
	stored, _ := subscription.ReconstructRecord(
		r.ID(), r.UserID(), r.CustomerID(), r.SubscriptionID(), r.PlanName(),
		r.CurrentPeriodEnd(), payload, r.CreatedAt(), r.UpdatedAt(),
	)
	m.s.records[r.UserID()] = stored
	m.s.writes++
	return nil
}

func (m memorySubscriptions) EnsureFree(ctx context.Context, userID string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.records[userID]; !ok {
		rec, err := subscription.NewRecord(userID)
		if err != nil {
			return err
		}
		m.s.records[userID] = rec
	}
	return nil
}

// inlineTransactor runs the callback without a real transaction
type inlineTransactor struct{}

func (inlineTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockPaymentGateway struct {
	CreateCheckoutSessionFunc func(ctx context.Context, req paymentgateway.CheckoutRequest) (*paymentgateway.CheckoutSession, error)
	FindCustomerByEmailFunc   func(ctx context.Context, email string) (string, error)
	LatestSubscriptionFunc    func(ctx context.Context, customerID string) (*payment.SubscriptionSnapshot, error)
	ParseWebhookFunc          func(payload []byte, signature string) (*payment.Event, error)
}

func (m *mockPaymentGateway) CreateCheckoutSession(ctx context.Context, req paymentgateway.CheckoutRequest) (*paymentgateway.CheckoutSession, error) {
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, req)
	}
	return &paymentgateway.CheckoutSession{ID: "cs_test", URL: "https://checkout.example/cs_test"}, nil
}

func (m *mockPaymentGateway) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	if m.FindCustomerByEmailFunc != nil {
		return m.FindCustomerByEmailFunc(ctx, email)
	}
	return "", paymentgateway.ErrCustomerNotFound
}

func (m *mockPaymentGateway) LatestSubscription(ctx context.Context, customerID string) (*payment.SubscriptionSnapshot, error) {
	if m.LatestSubscriptionFunc != nil {
		return m.LatestSubscriptionFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *mockPaymentGateway) ParseWebhook(payload []byte, signature string) (*payment.Event, error) {
	if m.ParseWebhookFunc != nil {
		return m.ParseWebhookFunc(payload, signature)
	}
	return nil, paymentgateway.ErrInvalidSignature
}

// eventGateway returns a gateway whose webhook parser accepts signature "valid" and yields event.
func eventGateway(event *payment.Event) *mockPaymentGateway {
	return &mockPaymentGateway{
		ParseWebhookFunc: func(payload []byte, signature string) (*payment.Event, error) {
			if signature != "valid" {
				return nil, paymentgateway.ErrInvalidSignature
			}
			e := *event
			e.Payload = payload
			return &e, nil
		},
	}
}
