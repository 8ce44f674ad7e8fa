//go:build unit

package commands_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"coupon-service/internal/domain/campaign"
	"coupon-service/internal/domain/grant"
	"coupon-service/internal/infra"
	"coupon-service/internal/infra/redisstore"
	"coupon-service/internal/infra/repository"
	"coupon-service/internal/infra/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// memTx is an in-memory stand-in for pgx.Tx: it tracks undo closures so a
// rollback restores the ledger fakes, and close hooks so row locks release at
// transaction end.
type memTx struct {
	mu     sync.Mutex
	undos  []func()
	closes []func()
	closed bool
}

func (t *memTx) onRollback(undo func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.undos = append(t.undos, undo)
}

func (t *memTx) onClose(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closes = append(t.closes, fn)
}

func (t *memTx) Commit(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	for i := len(t.closes) - 1; i >= 0; i-- {
		t.closes[i]()
	}
	return nil
}

func (t *memTx) Rollback(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true
	for i := len(t.undos) - 1; i >= 0; i-- {
		t.undos[i]()
	}
	for i := len(t.closes) - 1; i >= 0; i-- {
		t.closes[i]()
	}
	return nil
}

func (t *memTx) Begin(context.Context) (pgx.Tx, error) { panic("not implemented") }
func (t *memTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}
func (t *memTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { panic("not implemented") }
func (t *memTx) LargeObjects() pgx.LargeObjects                         { panic("not implemented") }
func (t *memTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}
func (t *memTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *memTx) Query(context.Context, string, ...any) (pgx.Rows, error) { panic("not implemented") }
func (t *memTx) QueryRow(context.Context, string, ...any) pgx.Row        { panic("not implemented") }
func (t *memTx) Conn() *pgx.Conn                                         { return nil }

type memTxBeginner struct{}

func (memTxBeginner) Begin(context.Context) (pgx.Tx, error) { return &memTx{}, nil }

// memLedger backs the campaign and grant repository fakes with one shared
// mutex-guarded state.
type memLedger struct {
	mu        sync.Mutex
	campaigns map[uuid.UUID]*repository.CampaignRow
	byCode    map[string]uuid.UUID
	grants    map[uuid.UUID]map[string]*repository.GrantRow
	rowLocks  map[string]*sync.Mutex

	insertErr error // injected failure for grant inserts
}

func newMemLedger() *memLedger {
	return &memLedger{
		campaigns: make(map[uuid.UUID]*repository.CampaignRow),
		byCode:    make(map[string]uuid.UUID),
		grants:    make(map[uuid.UUID]map[string]*repository.GrantRow),
		rowLocks:  make(map[string]*sync.Mutex),
	}
}

func (l *memLedger) addCampaign(code string, quantity int32, start, end time.Time) *repository.CampaignRow {
	l.mu.Lock()
	defer l.mu.Unlock()
	row := &repository.CampaignRow{
		ID:                uuid.New(),
		Code:              code,
		Name:              "campaign " + code,
		TotalQuantity:     quantity,
		RemainingQuantity: quantity,
		ExpirationDate:    end.AddDate(0, 0, 30),
		IssueStartTime:    start,
		IssueEndTime:      end,
	}
	l.campaigns[row.ID] = row
	l.byCode[code] = row.ID
	l.grants[row.ID] = make(map[string]*repository.GrantRow)
	l.rowLocks[code] = &sync.Mutex{}
	return row
}

func (l *memLedger) grantCount(campaignID uuid.UUID) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.grants[campaignID])
}

func (l *memLedger) remaining(campaignID uuid.UUID) int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.campaigns[campaignID].RemainingQuantity
}

type memCampaignRepo struct{ ledger *memLedger }

func (r *memCampaignRepo) Create(_ context.Context, c *campaign.Campaign) error {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	row := &repository.CampaignRow{
		ID:                c.ID(),
		Code:              c.Code().String(),
		Name:              c.Name(),
		TotalQuantity:     c.TotalQuantity(),
		RemainingQuantity: c.RemainingQuantity(),
		ExpirationDate:    c.ExpirationDate(),
		IssueStartTime:    c.IssueStartTime(),
		IssueEndTime:      c.IssueEndTime(),
	}
	r.ledger.campaigns[row.ID] = row
	r.ledger.byCode[row.Code] = row.ID
	r.ledger.grants[row.ID] = make(map[string]*repository.GrantRow)
	r.ledger.rowLocks[row.Code] = &sync.Mutex{}
	return nil
}

func (r *memCampaignRepo) FindByCode(_ context.Context, code string) (*repository.CampaignRow, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	id, ok := r.ledger.byCode[code]
	if !ok {
		return nil, infra.WrapRepoErr("campaign not found", nil, infra.KindNotFound)
	}
	row := *r.ledger.campaigns[id]
	return &row, nil
}

func (r *memCampaignRepo) FindByCodeForUpdate(_ context.Context, tx repository.DBTX, code string) (*repository.CampaignRow, error) {
	r.ledger.mu.Lock()
	rowLock, ok := r.ledger.rowLocks[code]
	r.ledger.mu.Unlock()
	if !ok {
		return nil, infra.WrapRepoErr("campaign not found", nil, infra.KindNotFound)
	}

	rowLock.Lock()
	if mt, ok := tx.(*memTx); ok {
		mt.onClose(rowLock.Unlock)
	}

	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	row := *r.ledger.campaigns[r.ledger.byCode[code]]
	return &row, nil
}

func (r *memCampaignRepo) FindByID(_ context.Context, id uuid.UUID) (*repository.CampaignRow, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	row, ok := r.ledger.campaigns[id]
	if !ok {
		return nil, infra.WrapRepoErr("campaign not found", nil, infra.KindNotFound)
	}
	copied := *row
	return &copied, nil
}

func (r *memCampaignRepo) TryReserve(_ context.Context, q repository.DBTX, campaignID uuid.UUID) (bool, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	row := r.ledger.campaigns[campaignID]
	if row.RemainingQuantity <= 0 {
		return false, nil
	}
	row.RemainingQuantity--
	if mt, ok := q.(*memTx); ok {
		mt.onRollback(func() {
			r.ledger.mu.Lock()
			defer r.ledger.mu.Unlock()
			row.RemainingQuantity++
		})
	}
	return true, nil
}

func (r *memCampaignRepo) ReleaseReservation(_ context.Context, _ repository.DBTX, campaignID uuid.UUID) error {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	row := r.ledger.campaigns[campaignID]
	if row.RemainingQuantity < row.TotalQuantity {
		row.RemainingQuantity++
	}
	return nil
}

func (r *memCampaignRepo) ExistsByNameAndExpiration(_ context.Context, name string, expirationDate time.Time) (bool, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	for _, row := range r.ledger.campaigns {
		if row.Name == name && row.ExpirationDate.Equal(expirationDate) {
			return true, nil
		}
	}
	return false, nil
}

type memGrantRepo struct{ ledger *memLedger }

func (r *memGrantRepo) Insert(_ context.Context, q repository.DBTX, g *grant.Grant) (bool, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	if r.ledger.insertErr != nil {
		return false, r.ledger.insertErr
	}
	byRequester := r.ledger.grants[g.CampaignID()]
	if _, exists := byRequester[g.Requester()]; exists {
		return false, nil
	}
	row := &repository.GrantRow{
		ID:         g.ID(),
		Requester:  g.Requester(),
		CampaignID: g.CampaignID(),
		IssuedAt:   g.IssuedAt(),
		UsedAt:     g.UsedAt(),
		Status:     string(g.Status()),
	}
	byRequester[g.Requester()] = row
	if mt, ok := q.(*memTx); ok {
		requester := g.Requester()
		mt.onRollback(func() {
			r.ledger.mu.Lock()
			defer r.ledger.mu.Unlock()
			delete(byRequester, requester)
		})
	}
	return true, nil
}

func (r *memGrantRepo) FindByRequester(_ context.Context, requester string) (*repository.GrantRow, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	var latest *repository.GrantRow
	for _, byRequester := range r.ledger.grants {
		if row, ok := byRequester[requester]; ok {
			if latest == nil || row.IssuedAt.After(latest.IssuedAt) {
				latest = row
			}
		}
	}
	if latest == nil {
		return nil, infra.WrapRepoErr("grant not found", nil, infra.KindNotFound)
	}
	copied := *latest
	return &copied, nil
}

func (r *memGrantRepo) ExistsByCampaignAndRequester(_ context.Context, _ repository.DBTX, campaignID uuid.UUID, requester string) (bool, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	_, ok := r.ledger.grants[campaignID][requester]
	return ok, nil
}

func (r *memGrantRepo) TransitionStatus(_ context.Context, g *grant.Grant, from grant.Status) (bool, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	row, ok := r.ledger.grants[g.CampaignID()][g.Requester()]
	if !ok {
		return false, infra.WrapRepoErr("grant not found", nil, infra.KindNotFound)
	}
	if row.Status != string(from) {
		return false, nil
	}
	row.Status = string(g.Status())
	row.UsedAt = g.UsedAt()
	return true, nil
}

func (r *memGrantRepo) FindExpiringOn(_ context.Context, date time.Time, limit, offset int) ([]repository.ExpiringGrantRow, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	var all []repository.ExpiringGrantRow
	for campaignID, byRequester := range r.ledger.grants {
		camp := r.ledger.campaigns[campaignID]
		if !sameDate(camp.ExpirationDate, date) {
			continue
		}
		for requester, row := range byRequester {
			if row.Status == "ISSUED" {
				all = append(all, repository.ExpiringGrantRow{Requester: requester, CampaignName: camp.Name})
			}
		}
	}
	// map iteration order would make offset paging lossy
	sort.Slice(all, func(i, j int) bool { return all[i].Requester < all[j].Requester })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// memReserver mimics the scripted check-and-reserve: dedup marker first,
// bounded counter second, marker set only on success.
type memReserver struct {
	mu       sync.Mutex
	counters map[string]int32
	markers  map[string]bool

	reserveErr error
	released   []string
}

func newMemReserver() *memReserver {
	return &memReserver{
		counters: make(map[string]int32),
		markers:  make(map[string]bool),
	}
}

func (r *memReserver) Reserve(_ context.Context, campaignCode, requester string, totalQuantity int32, _ time.Duration) (redisstore.ReserveResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reserveErr != nil {
		return 0, r.reserveErr
	}
	marker := campaignCode + ":" + requester
	if r.markers[marker] {
		return redisstore.ReserveDuplicate, nil
	}
	if r.counters[campaignCode] >= totalQuantity {
		return redisstore.ReserveExhausted, nil
	}
	r.counters[campaignCode]++
	r.markers[marker] = true
	return redisstore.ReserveOK, nil
}

func (r *memReserver) Release(_ context.Context, campaignCode, requester string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	marker := campaignCode + ":" + requester
	if r.markers[marker] {
		r.counters[campaignCode]--
		delete(r.markers, marker)
	}
	r.released = append(r.released, marker)
	return nil
}

type memLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newMemLocker() *memLocker {
	return &memLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *memLocker) Acquire(_ context.Context, campaignCode string) (func() error, error) {
	l.mu.Lock()
	lock, ok := l.locks[campaignCode]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[campaignCode] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return func() error {
		lock.Unlock()
		return nil
	}, nil
}

type memPublisher struct {
	mu         sync.Mutex
	issuances  []stream.IssuanceRequest
	usages     []stream.UsageEvent
	publishErr error
}

func (p *memPublisher) PublishIssuance(_ context.Context, req stream.IssuanceRequest) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.publishErr != nil {
		return p.publishErr
	}
	p.issuances = append(p.issuances, req)
	return nil
}

func (p *memPublisher) PublishUsage(_ context.Context, event stream.UsageEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.publishErr != nil {
		return p.publishErr
	}
	p.usages = append(p.usages, event)
	return nil
}

type memNotifier struct {
	mu      sync.Mutex
	sent    []string
	sendErr error
	failFor map[string]bool
}

func (n *memNotifier) Send(_ context.Context, to, _, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sendErr != nil {
		return n.sendErr
	}
	if n.failFor[to] {
		return context.DeadlineExceeded
	}
	n.sent = append(n.sent, to)
	return nil
}
