package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"staffhub/internal/core"
	fluentdModel "staffhub/internal/database/fluentd/model"
	"staffhub/internal/database/mongodb/model"
	"staffhub/internal/database/mongodb/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

// ===== Directory =====

type fakeDirectory struct {
	mu        sync.Mutex
	byUID     map[string]*model.Identity
	byEmail   map[string]string
	seq       int
	createErr map[string]error // email → 建立時回傳的錯誤
	probeErr  error
	deleteErr error
	updateErr error

	createCalls int
	listCalls   int
	deleted     []string
	now         time.Time
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		byUID:     make(map[string]*model.Identity),
		byEmail:   make(map[string]string),
		createErr: make(map[string]error),
		now:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// seed 模擬目錄中已存在（非本服務建立）的帳號
func (d *fakeDirectory) seed(email string, createdAt time.Time, origin core.IdentityOrigin) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	uid := fmt.Sprintf("seed-%d", d.seq)
	d.byUID[uid] = &model.Identity{UID: uid, Email: email, Origin: string(origin), CreatedAt: createdAt}
	d.byEmail[email] = uid
	return uid
}

func (d *fakeDirectory) CreateUser(_ context.Context, params CreateIdentityParams) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.createCalls++
	if err, ok := d.createErr[params.Email]; ok {
		return "", err
	}
	if _, ok := d.byEmail[params.Email]; ok {
		return "", ErrIdentityExists
	}
	d.seq++
	uid := fmt.Sprintf("uid-%d", d.seq)
	d.byUID[uid] = &model.Identity{
		UID:           uid,
		Email:         params.Email,
		PasswordHash:  params.Password,
		EmailVerified: params.EmailVerified,
		Disabled:      params.Disabled,
		Origin:        string(params.Origin),
		ShopID:        params.ShopID,
		CreatedAt:     d.now,
	}
	d.byEmail[params.Email] = uid
	return uid, nil
}

func (d *fakeDirectory) GetUserByEmail(_ context.Context, email string) (*model.Identity, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.probeErr != nil {
		return nil, d.probeErr
	}
	uid, ok := d.byEmail[email]
	if !ok {
		return nil, ErrIdentityNotFound
	}
	return d.byUID[uid], nil
}

func (d *fakeDirectory) UpdateUser(_ context.Context, uid string, params UpdateIdentityParams) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.updateErr != nil {
		return d.updateErr
	}
	identity, ok := d.byUID[uid]
	if !ok {
		return ErrIdentityNotFound
	}
	if params.Disabled != nil {
		identity.Disabled = *params.Disabled
	}
	if params.Password != nil {
		identity.PasswordHash = *params.Password
	}
	return nil
}

func (d *fakeDirectory) DeleteUser(_ context.Context, uid string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.deleteErr != nil {
		return d.deleteErr
	}
	identity, ok := d.byUID[uid]
	if !ok {
		return ErrIdentityNotFound
	}
	delete(d.byUID, uid)
	delete(d.byEmail, identity.Email)
	d.deleted = append(d.deleted, uid)
	return nil
}

func (d *fakeDirectory) ListByOrigin(_ context.Context, origin core.IdentityOrigin, before time.Time, after *repository.IdentityCursor, limit int64) ([]*model.Identity, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listCalls++
	all := make([]*model.Identity, 0, len(d.byUID))
	for _, identity := range d.byUID {
		all = append(all, identity)
	}
	return pageIdentities(all, string(origin), before, after, limit), nil
}

// pageIdentities 與 mongo 實作相同：依 (createdAt, uid) 排序、遊標之後、最多 limit 筆
func pageIdentities(all []*model.Identity, origin string, before time.Time, after *repository.IdentityCursor, limit int64) []*model.Identity {
	out := make([]*model.Identity, 0)
	for _, identity := range all {
		if identity.Origin != origin || !identity.CreatedAt.Before(before) {
			continue
		}
		if after != nil {
			if identity.CreatedAt.Before(after.CreatedAt) {
				continue
			}
			if identity.CreatedAt.Equal(after.CreatedAt) && identity.UID <= after.UID {
				continue
			}
		}
		cp := *identity
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].UID < out[j].UID
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out
}

func (d *fakeDirectory) has(uid string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.byUID[uid]
	return ok
}

// ===== Employee store =====

type fakeEmployeeStore struct {
	mu        sync.Mutex
	records   map[string]*model.Employee
	createErr map[string]error // email → 錯誤
	deleteErr error
	existsErr error
	updateErr error
}

func newFakeEmployeeStore() *fakeEmployeeStore {
	return &fakeEmployeeStore{records: make(map[string]*model.Employee), createErr: make(map[string]error)}
}

func (s *fakeEmployeeStore) Create(_ context.Context, employee *model.Employee) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.createErr[employee.Email]; ok {
		return nil, err
	}
	cp := *employee
	s.records[employee.ID] = &cp
	return employee, nil
}

func (s *fakeEmployeeStore) GetByID(_ context.Context, uid string) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.records[uid]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *e
	return &cp, nil
}

func (s *fakeEmployeeStore) Exists(_ context.Context, uid string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.existsErr != nil {
		return false, s.existsErr
	}
	_, ok := s.records[uid]
	return ok, nil
}

func (s *fakeEmployeeStore) ListByShop(_ context.Context, shopID string) ([]*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Employee, 0)
	for _, e := range s.records {
		if e.ShopID == shopID {
			cp := *e
			cp.TemporaryPassword = ""
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeNumber < out[j].EmployeeNumber })
	return out, nil
}

func (s *fakeEmployeeStore) UpdateStatus(_ context.Context, uid, status, updatedBy string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	e, ok := s.records[uid]
	if !ok {
		return mongo.ErrNoDocuments
	}
	e.Status, e.StatusUpdatedBy, e.LastUpdated = status, updatedBy, at
	return nil
}

func (s *fakeEmployeeStore) UpdatePassword(_ context.Context, uid, password, resetBy string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.records[uid]
	if !ok {
		return mongo.ErrNoDocuments
	}
	e.TemporaryPassword, e.PasswordResetBy, e.LastUpdated = password, resetBy, at
	e.PasswordResetAt = &at
	return nil
}

func (s *fakeEmployeeStore) Delete(_ context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.records[uid]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.records, uid)
	return nil
}

func (s *fakeEmployeeStore) get(uid string) (*model.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.records[uid]
	return e, ok
}

// ===== Membership store =====

type fakeMembershipStore struct {
	mu      sync.Mutex
	entries map[string]*model.ShopEmployee
	putErr  map[string]error // email → 錯誤
}

func newFakeMembershipStore() *fakeMembershipStore {
	return &fakeMembershipStore{entries: make(map[string]*model.ShopEmployee), putErr: make(map[string]error)}
}

func (s *fakeMembershipStore) Put(_ context.Context, m *model.ShopEmployee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.putErr[m.Email]; ok {
		return err
	}
	cp := *m
	s.entries[model.ShopEmployeeKey(m.ShopID, m.EmployeeID)] = &cp
	return nil
}

func (s *fakeMembershipStore) UpdateStatus(_ context.Context, shopID, uid, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.entries[model.ShopEmployeeKey(shopID, uid)]
	if !ok {
		return mongo.ErrNoDocuments
	}
	m.Status = status
	return nil
}

func (s *fakeMembershipStore) Delete(_ context.Context, shopID, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, model.ShopEmployeeKey(shopID, uid))
	return nil
}

func (s *fakeMembershipStore) get(shopID, uid string) (*model.ShopEmployee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.entries[model.ShopEmployeeKey(shopID, uid)]
	return m, ok
}

// ===== Shop store =====

type fakeShopStore struct {
	mu         sync.Mutex
	owners     map[string]bool
	counters   map[string]int
	registered map[string]*model.Shop
	advanceErr error
	reads      int
}

func newFakeShopStore(owners ...string) *fakeShopStore {
	s := &fakeShopStore{owners: make(map[string]bool), counters: make(map[string]int), registered: make(map[string]*model.Shop)}
	for _, o := range owners {
		s.owners[o] = true
	}
	return s
}

func (s *fakeShopStore) OwnerExists(_ context.Context, ownerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owners[ownerID], nil
}

func (s *fakeShopStore) LastEmployeeNumber(_ context.Context, shopID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return s.counters[shopID], nil
}

func (s *fakeShopStore) AdvanceLastEmployeeNumber(_ context.Context, shopID string, number int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.advanceErr != nil {
		return 0, s.advanceErr
	}
	if number > s.counters[shopID] {
		s.counters[shopID] = number
	}
	return s.counters[shopID], nil
}

func (s *fakeShopStore) Register(_ context.Context, shop *model.Shop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *shop
	s.registered[shop.ID] = &cp
	s.owners[shop.ID] = true
	return nil
}

func (s *fakeShopStore) counter(shopID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[shopID]
}

// ===== Batch log store / auditor =====

type fakeBatchLogStore struct {
	mu        sync.Mutex
	logs      []*model.BatchLog
	appendErr error
	lastLimit int64
}

func (s *fakeBatchLogStore) Append(_ context.Context, l *model.BatchLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	cp := *l
	s.logs = append(s.logs, &cp)
	return nil
}

func (s *fakeBatchLogStore) ListByShop(_ context.Context, shopID string, limit int64) ([]*model.BatchLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLimit = limit
	out := make([]*model.BatchLog, 0)
	for i := len(s.logs) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if s.logs[i].ShopID == shopID {
			out = append(out, s.logs[i])
		}
	}
	return out, nil
}

type fakeAuditor struct {
	mu     sync.Mutex
	audits []fluentdModel.BatchAuditLog
}

func (a *fakeAuditor) LogBatch(_ context.Context, audit fluentdModel.BatchAuditLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.audits = append(a.audits, audit)
	return nil
}

// ===== Identity store (DirectoryService) =====

type fakeIdentityStore struct {
	mu      sync.Mutex
	records map[string]*model.Identity
}

func newFakeIdentityStore() *fakeIdentityStore {
	return &fakeIdentityStore{records: make(map[string]*model.Identity)}
}

func (s *fakeIdentityStore) Insert(_ context.Context, identity *model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Email == identity.Email {
			return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}
		}
	}
	cp := *identity
	s.records[identity.UID] = &cp
	return nil
}

func (s *fakeIdentityStore) GetByEmail(_ context.Context, email string) (*model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.Email == email {
			cp := *r
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *fakeIdentityStore) Update(_ context.Context, uid string, fields repository.IdentityUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[uid]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if fields.Disabled != nil {
		r.Disabled = *fields.Disabled
	}
	if fields.PasswordHash != nil {
		r.PasswordHash = *fields.PasswordHash
	}
	return nil
}

func (s *fakeIdentityStore) Delete(_ context.Context, uid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[uid]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(s.records, uid)
	return nil
}

func (s *fakeIdentityStore) ListByOriginBefore(_ context.Context, origin string, before time.Time, after *repository.IdentityCursor, limit int64) ([]*model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*model.Identity, 0, len(s.records))
	for _, r := range s.records {
		all = append(all, r)
	}
	return pageIdentities(all, origin, before, after, limit), nil
}
