package recommend

import (
	"context"
	"testing"

	"github.com/BinLe1988/stayhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentScoreSimilarProperty(t *testing.T) {
	store := newFakeStore()
	wifi := models.Amenity{ID: 1, Name: "wifi"}

	// 参照房源：巴黎公寓，100/晚，2人，wifi
	store.addProperty(models.Property{
		Model: gormModel(1), Type: models.PropertyApartment, City: "Paris",
		PricePerNight: 100, MaxGuests: 2, Status: models.PropertyActive,
		Amenities: []models.Amenity{wifi},
	})
	// 候选：同城同类型，价格110（30%以内），3人，wifi → 相似度5/5
	store.addProperty(models.Property{
		Model: gormModel(2), Type: models.PropertyApartment, City: "Paris",
		PricePerNight: 110, MaxGuests: 3, Status: models.PropertyActive,
		Amenities: []models.Amenity{wifi},
	})
	// 候选：完全不相关的别墅
	store.addProperty(models.Property{
		Model: gormModel(3), Type: models.PropertyVilla, City: "Nice",
		PricePerNight: 500, MaxGuests: 8, Status: models.PropertyActive,
	})

	profile := &UserProfile{
		UserID:        1,
		ViewedIDs:     map[uint]bool{1: true},
		BookmarkedIDs: map[uint]bool{},
		BookedIDs:     map[uint]bool{1: true},
	}

	scorer := NewContentScorer(store, DefaultOptions())
	results, err := scorer.Score(context.Background(), profile)
	require.NoError(t, err)

	// 只有高相似候选通过0.5阈值
	require.Len(t, results, 1)
	assert.Equal(t, uint(2), results[0].PropertyID)
	assert.InDelta(t, 1.0, results[0].RawScore, 1e-9)
	assert.Equal(t, SourceContent, results[0].Source)
}

func TestContentEmptyWithoutReferenceSet(t *testing.T) {
	store := newFakeStore()
	store.addProperty(models.Property{
		Model: gormModel(2), Type: models.PropertyApartment, City: "Paris",
		PricePerNight: 110, Status: models.PropertyActive,
	})

	// 只有浏览记录、没有预订和收藏时，参照集为空
	profile := &UserProfile{
		UserID:        1,
		ViewedIDs:     map[uint]bool{2: true},
		BookmarkedIDs: map[uint]bool{},
		BookedIDs:     map[uint]bool{},
	}

	scorer := NewContentScorer(store, DefaultOptions())
	results, err := scorer.Score(context.Background(), profile)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestContentZeroAmenityCandidate(t *testing.T) {
	store := newFakeStore()
	wifi := models.Amenity{ID: 1, Name: "wifi"}

	store.addProperty(models.Property{
		Model: gormModel(1), Type: models.PropertyApartment, City: "Paris",
		PricePerNight: 100, MaxGuests: 2, Status: models.PropertyActive,
		Amenities: []models.Amenity{wifi},
	})
	// 无设施候选，分母保护避免除零；其余4项全满足 → 4/5
	store.addProperty(models.Property{
		Model: gormModel(2), Type: models.PropertyApartment, City: "Paris",
		PricePerNight: 95, MaxGuests: 2, Status: models.PropertyActive,
	})

	profile := &UserProfile{
		UserID:        1,
		ViewedIDs:     map[uint]bool{1: true},
		BookmarkedIDs: map[uint]bool{1: true},
		BookedIDs:     map[uint]bool{},
	}

	scorer := NewContentScorer(store, DefaultOptions())
	results, err := scorer.Score(context.Background(), profile)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.InDelta(t, 0.8, results[0].RawScore, 1e-9)
}

func TestContentAveragesOverReferences(t *testing.T) {
	store := newFakeStore()

	// 两个反差很大的参照房源
	store.addProperty(models.Property{
		Model: gormModel(1), Type: models.PropertyApartment, City: "Paris",
		PricePerNight: 100, MaxGuests: 2, Status: models.PropertyActive,
	})
	store.addProperty(models.Property{
		Model: gormModel(2), Type: models.PropertyVilla, City: "Nice",
		PricePerNight: 500, MaxGuests: 8, Status: models.PropertyActive,
	})
	// 候选与参照1完全相似(4/5=0.8)，与参照2仅人数接近两档外 → 平均被拉低
	store.addProperty(models.Property{
		Model: gormModel(3), Type: models.PropertyApartment, City: "Paris",
		PricePerNight: 100, MaxGuests: 2, Status: models.PropertyActive,
	})

	profile := &UserProfile{
		UserID:        1,
		ViewedIDs:     map[uint]bool{},
		BookmarkedIDs: map[uint]bool{},
		BookedIDs:     map[uint]bool{1: true, 2: true},
	}

	scorer := NewContentScorer(store, DefaultOptions())
	results, err := scorer.Score(context.Background(), profile)
	require.NoError(t, err)

	// 对参照1得0.8，对参照2得0：平均0.4低于阈值，被过滤
	assert.Empty(t, results)
}

func TestContentExcludesViewedAndBooked(t *testing.T) {
	store := newFakeStore()
	store.addProperty(models.Property{
		Model: gormModel(1), Type: models.PropertyApartment, City: "Paris",
		PricePerNight: 100, MaxGuests: 2, Status: models.PropertyActive,
	})
	store.addProperty(models.Property{
		Model: gormModel(2), Type: models.PropertyApartment, City: "Paris",
		PricePerNight: 100, MaxGuests: 2, Status: models.PropertyActive,
	})

	profile := &UserProfile{
		UserID:        1,
		ViewedIDs:     map[uint]bool{2: true}, // 候选2已浏览
		BookmarkedIDs: map[uint]bool{},
		BookedIDs:     map[uint]bool{1: true},
	}

	scorer := NewContentScorer(store, DefaultOptions())
	results, err := scorer.Score(context.Background(), profile)

	require.NoError(t, err)
	assert.Empty(t, results)
}
