package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/marketplace/internal/domain"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/logger"
)

// memStore — хранилище в памяти, реализующее порты репозиториев для тестов.
type memStore struct {
	mu sync.Mutex

	users      map[int64]*domain.User
	categories map[int64]*domain.Category
	products   map[int64]*domain.Product
	orders     map[int64]*domain.Order
	outbox     []*OutboxEvent
	nextID     int64
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[int64]*domain.User{},
		categories: map[int64]*domain.Category{},
		products:   map[int64]*domain.Product{},
		orders:     map[int64]*domain.Order{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return nil, e.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return nil, e.ErrEmailTaken
		}
	}

	created := *user
	created.ID = r.s.id()
	created.CreatedAt = time.Now().UTC()
	r.s.users[created.ID] = &created

	out := created
	return &out, nil
}

func (r memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, e.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, e.ErrUserNotFound
}

func (r memUserRepo) GetByIDs(_ context.Context, ids []int64) (map[int64]*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := make(map[int64]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out := *u
			res[id] = &out
		}
	}
	return res, nil
}

type memCategoryRepo struct{ s *memStore }

func (r memCategoryRepo) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.categories {
		if c.Name == category.Name {
			return nil, e.ErrCategoryTaken
		}
	}

	created := *category
	created.ID = r.s.id()
	created.CreatedAt = time.Now().UTC()
	r.s.categories[created.ID] = &created

	out := created
	return &out, nil
}

func (r memCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, e.ErrCategoryNotFound
	}
	out := *c
	return &out, nil
}

func (r memCategoryRepo) GetByIDs(_ context.Context, ids []int64) (map[int64]*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := make(map[int64]*domain.Category, len(ids))
	for _, id := range ids {
		if c, ok := r.s.categories[id]; ok {
			out := *c
			res[id] = &out
		}
	}
	return res, nil
}

func (r memCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := make([]domain.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		res = append(res, *c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

type memProductRepo struct{ s *memStore }

func (r memProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := *product
	created.ID = r.s.id()
	created.CreatedAt = time.Now().UTC()
	r.s.products[created.ID] = &created

	out := created
	return &out, nil
}

func (r memProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	out := *p
	return &out, nil
}

func (r memProductRepo) GetByIDForShare(ctx context.Context, id int64) (*domain.Product, error) {
	return r.GetByID(ctx, id)
}

func (r memProductRepo) List(_ context.Context) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := make([]domain.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		res = append(res, *p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r memProductRepo) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[product.ID]; !ok {
		return nil, e.ErrProductNotFound
	}

	updated := *product
	now := time.Now().UTC()
	updated.UpdatedAt = &now
	r.s.products[product.ID] = &updated

	out := updated
	return &out, nil
}

func (r memProductRepo) SetAsset(_ context.Context, id int64, assetKey *string) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	p.AssetKey = assetKey

	out := *p
	return &out, nil
}

func (r memProductRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[id]; !ok {
		return e.ErrProductNotFound
	}
	delete(r.s.products, id)
	for oid, o := range r.s.orders {
		if o.ProductID == id {
			delete(r.s.orders, oid)
		}
	}
	return nil
}

type memOrderRepo struct{ s *memStore }

func (r memOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := *order
	created.ID = r.s.id()
	created.CreatedAt = time.Now().UTC()
	r.s.orders[created.ID] = &created

	out := created
	return &out, nil
}

func (r memOrderRepo) GetForBuyer(_ context.Context, orderID, buyerID int64) (*OrderInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[orderID]
	if !ok || o.BuyerID != buyerID {
		return nil, e.ErrOrderNotFound
	}
	return r.info(o), nil
}

func (r memOrderRepo) ListByBuyer(_ context.Context, buyerID int64) ([]OrderInfo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := make([]OrderInfo, 0)
	for _, o := range r.s.orders {
		if o.BuyerID == buyerID {
			res = append(res, *r.info(o))
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	return res, nil
}

func (r memOrderRepo) info(o *domain.Order) *OrderInfo {
	var title, buyerName string
	if p, ok := r.s.products[o.ProductID]; ok {
		title = p.Title
	}
	if u, ok := r.s.users[o.BuyerID]; ok {
		buyerName = u.Name
	}
	return NewOrderInfo(o, title, buyerName)
}

type memOutboxRepo struct {
	s   *memStore
	err error
}

func (r *memOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	if r.err != nil {
		return nil, r.err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	created := *event
	created.ID = r.s.id()
	r.s.outbox = append(r.s.outbox, &created)
	return &created, nil
}

func (r *memOutboxRepo) GetAndMarkAsProcessing(context.Context, int, time.Duration) ([]*OutboxEvent, error) {
	return nil, nil
}

func (r *memOutboxRepo) MarkAsProcessed(context.Context, int64) error {
	return nil
}

// snapshotTx откатывает заказы и события, если fn вернула ошибку.
type snapshotTx struct{ s *memStore }

func (t snapshotTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.s.mu.Lock()
	orders := make(map[int64]*domain.Order, len(t.s.orders))
	for k, v := range t.s.orders {
		orders[k] = v
	}
	outbox := append([]*OutboxEvent(nil), t.s.outbox...)
	t.s.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.s.mu.Lock()
		t.s.orders = orders
		t.s.outbox = outbox
		t.s.mu.Unlock()
		return err
	}
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return e.ErrInvalidCredentials
	}
	return nil
}

type fakeTokens struct {
	mu     sync.Mutex
	n      int
	issued map[string]*TokenClaims
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{issued: map[string]*TokenClaims{}}
}

func (f *fakeTokens) Issue(user *domain.User, typ TokenType) (*IssuedToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.n++
	token := fmt.Sprintf("%s-%d-%d", typ, user.ID, f.n)
	claims := &TokenClaims{
		UserID:    user.ID,
		TokenID:   fmt.Sprintf("jti-%d", f.n),
		Type:      typ,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	f.issued[token] = claims

	return &IssuedToken{Token: token, ID: claims.TokenID, Type: typ, ExpiresAt: claims.ExpiresAt}, nil
}

func (f *fakeTokens) Parse(token string) (*TokenClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	claims, ok := f.issued[token]
	if !ok {
		return nil, e.ErrInvalidToken
	}
	out := *claims
	return &out, nil
}

type memDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newMemDenylist() *memDenylist {
	return &memDenylist{revoked: map[string]time.Time{}}
}

func (d *memDenylist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = until
	return nil
}

func (d *memDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[tokenID]
	return ok, nil
}

type fakeAssets struct {
	mu        sync.Mutex
	n         int
	uploaded  []string
	cleanedUp []string
}

func (f *fakeAssets) UploadAsset(_ context.Context, req *UploadAssetReq) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.n++
	key := fmt.Sprintf("products/%d/%d-%s", req.ProductID, f.n, strings.ToLower(req.FileName))
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeAssets) CleanupAssets(keys []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleanedUp = append(f.cleanedUp, keys...)
}

func (f *fakeAssets) AssetURL(_ context.Context, key string) (string, error) {
	return "http://assets.local/" + key, nil
}

type jsonEncoder struct{}

func (jsonEncoder) EncodeOrderPlaced(event *OrderPlacedEvent) ([]byte, error) {
	return []byte(fmt.Sprintf(`{"order_id":%d}`, event.OrderID)), nil
}

// testEnv собирает все use case поверх одного хранилища в памяти.
type testEnv struct {
	store   *memStore
	outbox  *memOutboxRepo
	assets  *fakeAssets
	auth    *AuthUseCase
	catalog *CatalogUseCase
	orders  *OrderUseCase
}

func newTestEnv() *testEnv {
	store := newMemStore()
	outbox := &memOutboxRepo{s: store}
	assets := &fakeAssets{}
	log := logger.Discard()

	auth, err := NewAuthUC(memUserRepo{store}, plainHasher{}, newFakeTokens(), newMemDenylist(), log)
	if err != nil {
		panic(err)
	}

	return &testEnv{
		store:   store,
		outbox:  outbox,
		assets:  assets,
		auth:    auth,
		catalog: NewCatalogUC(memCategoryRepo{store}, memProductRepo{store}, memUserRepo{store}, assets, log),
		orders:  NewOrderUC(memOrderRepo{store}, memProductRepo{store}, outbox, jsonEncoder{}, snapshotTx{store}, log),
	}
}
