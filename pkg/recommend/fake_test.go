package recommend

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/BinLe1988/stayhub/models"

	"gorm.io/gorm"
)

// gormModel 构造指定ID的gorm.Model，简化测试夹具
func gormModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

// fakeStore 测试用内存数据源，按方法名记录调用次数并支持错误/延迟注入
type fakeStore struct {
	mu         sync.Mutex
	users      map[uint]bool
	behaviors  []models.UserBehavior
	bookings   []models.Booking
	properties map[uint]models.Property
	recs       map[[2]uint]models.Recommendation

	errs   map[string]error
	delays map[string]time.Duration
	calls  map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[uint]bool),
		properties: make(map[uint]models.Property),
		recs:       make(map[[2]uint]models.Recommendation),
		errs:       make(map[string]error),
		delays:     make(map[string]time.Duration),
		calls:      make(map[string]int),
	}
}

// enter 记录调用并执行注入的延迟/错误
func (f *fakeStore) enter(ctx context.Context, method string) error {
	f.mu.Lock()
	f.calls[method]++
	delay := f.delays[method]
	err := f.errs[method]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *fakeStore) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeStore) addProperty(p models.Property) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.properties[p.ID] = p
}

func (f *fakeStore) addBooking(b models.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, b)
}

func (f *fakeStore) addBehavior(b models.UserBehavior) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.behaviors = append(f.behaviors, b)
}

func (f *fakeStore) UserExists(ctx context.Context, userID uint) (bool, error) {
	if err := f.enter(ctx, "UserExists"); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[userID], nil
}

func (f *fakeStore) ListBehaviors(ctx context.Context, q BehaviorQuery) ([]models.UserBehavior, error) {
	if err := f.enter(ctx, "ListBehaviors"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []models.UserBehavior
	for _, b := range f.behaviors {
		if b.UserID != q.UserID {
			continue
		}
		if !q.Since.IsZero() && b.CreatedAt.Before(q.Since) {
			continue
		}
		if len(q.Actions) > 0 {
			matched := false
			for _, a := range q.Actions {
				if b.Action == a {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeStore) ListBookingsByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	if err := f.enter(ctx, "ListBookingsByUser"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID && b.Status != models.BookingCancelled {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeStore) FindPeerUserIDs(ctx context.Context, propertyIDs []uint, excludeUserID uint, limit int) ([]uint, error) {
	if err := f.enter(ctx, "FindPeerUserIDs"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	inSet := make(map[uint]bool, len(propertyIDs))
	for _, id := range propertyIDs {
		inSet[id] = true
	}

	seen := make(map[uint]bool)
	var peers []uint
	for _, b := range f.bookings {
		if b.Status != models.BookingCompleted || b.UserID == excludeUserID || !inSet[b.PropertyID] {
			continue
		}
		if !seen[b.UserID] {
			seen[b.UserID] = true
			peers = append(peers, b.UserID)
		}
	}
	sort.Slice(peers, func(i, j int) bool { return peers[i] < peers[j] })
	if len(peers) > limit {
		peers = peers[:limit]
	}
	return peers, nil
}

func (f *fakeStore) ListCompletedBookingsByUsers(ctx context.Context, userIDs []uint) ([]models.Booking, error) {
	if err := f.enter(ctx, "ListCompletedBookingsByUsers"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	inSet := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		inSet[id] = true
	}

	var result []models.Booking
	for _, b := range f.bookings {
		if b.Status == models.BookingCompleted && inSet[b.UserID] {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeStore) GetProperties(ctx context.Context, ids []uint) ([]models.Property, error) {
	if err := f.enter(ctx, "GetProperties"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []models.Property
	for _, id := range ids {
		if p, ok := f.properties[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeStore) ListActiveProperties(ctx context.Context) ([]models.Property, error) {
	if err := f.enter(ctx, "ListActiveProperties"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]uint, 0, len(f.properties))
	for id := range f.properties {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var result []models.Property
	for _, id := range ids {
		if f.properties[id].Status == models.PropertyActive {
			result = append(result, f.properties[id])
		}
	}
	return result, nil
}

func (f *fakeStore) PopularProperties(ctx context.Context, q PopularQuery) ([]PropertyStats, error) {
	if err := f.enter(ctx, "PopularProperties"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	excluded := make(map[uint]bool, len(q.ExcludeIDs))
	for _, id := range q.ExcludeIDs {
		excluded[id] = true
	}

	counts := make(map[uint]int)
	for _, b := range f.bookings {
		if b.Status != models.BookingCompleted || excluded[b.PropertyID] {
			continue
		}
		if p, ok := f.properties[b.PropertyID]; !ok || p.Status != models.PropertyActive {
			continue
		}
		counts[b.PropertyID]++
	}

	var stats []PropertyStats
	for id, count := range counts {
		if count > q.MinBookings {
			stats = append(stats, PropertyStats{
				PropertyID:   id,
				BookingCount: count,
				AvgRating:    f.properties[id].Rating,
			})
		}
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].BookingCount != stats[j].BookingCount {
			return stats[i].BookingCount > stats[j].BookingCount
		}
		if stats[i].AvgRating != stats[j].AvgRating {
			return stats[i].AvgRating > stats[j].AvgRating
		}
		return stats[i].PropertyID < stats[j].PropertyID
	})
	if len(stats) > q.Limit {
		stats = stats[:q.Limit]
	}
	return stats, nil
}

func (f *fakeStore) ListEligibleUserIDs(ctx context.Context, since time.Time) ([]uint, error) {
	if err := f.enter(ctx, "ListEligibleUserIDs"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	seen := make(map[uint]bool)
	var ids []uint
	for _, b := range f.behaviors {
		if b.CreatedAt.Before(since) || seen[b.UserID] {
			continue
		}
		seen[b.UserID] = true
		ids = append(ids, b.UserID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeStore) DeleteExpired(ctx context.Context, userID uint, before time.Time) error {
	if err := f.enter(ctx, "DeleteExpired"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for key, rec := range f.recs {
		if rec.UserID == userID && rec.ValidUntil.Before(before) {
			delete(f.recs, key)
		}
	}
	return nil
}

func (f *fakeStore) Upsert(ctx context.Context, recs []models.Recommendation) error {
	if err := f.enter(ctx, "Upsert"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rec := range recs {
		f.recs[[2]uint{rec.UserID, rec.PropertyID}] = rec
	}
	return nil
}

// rowsOf 返回用户的持久化推荐行
func (f *fakeStore) rowsOf(userID uint) []models.Recommendation {
	f.mu.Lock()
	defer f.mu.Unlock()

	var rows []models.Recommendation
	for _, rec := range f.recs {
		if rec.UserID == userID {
			rows = append(rows, rec)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PropertyID < rows[j].PropertyID })
	return rows
}

// errCacheDown 模拟缓存层不可用
var errCacheDown = errors.New("cache unavailable")

// failingCache 始终报错的缓存
type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]CombinedRecommendation, bool, error) {
	return nil, false, errCacheDown
}

func (failingCache) Set(context.Context, string, []CombinedRecommendation, time.Duration) error {
	return errCacheDown
}

func (failingCache) Delete(context.Context, string) error {
	return errCacheDown
}
