package hospital

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"
)

const defaultCacheTTL = 10 * time.Minute

type HospitalServiceAPI interface {
	GetByRegion(ctx context.Context, region string) ([]Hospital, error)
}

// ListCache fronts the region query with a shared cache (Redis in
// production). Misses and unmarshal failures fall through to the DB.
type ListCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type HospitalService struct {
	DB    *gorm.DB
	Cache ListCache // optional
	TTL   time.Duration
}

func NewHospitalService(db *gorm.DB, cache ListCache) *HospitalService {
	return &HospitalService{DB: db, Cache: cache, TTL: defaultCacheTTL}
}

func (hs *HospitalService) GetByRegion(ctx context.Context, region string) ([]Hospital, error) {
	region = strings.ToLower(strings.TrimSpace(region))
	key := "hospitals:" + region

	if hs.Cache != nil {
		if data, ok := hs.Cache.Get(ctx, key); ok {
			var cached []Hospital
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var hospitals []Hospital
	result := hs.DB.WithContext(ctx).
		Where("LOWER(region) = ?", region).
		Order("name ASC").
		Find(&hospitals)

	if result.Error != nil {
		return nil, result.Error
	}

	if hs.Cache != nil {
		if data, err := json.Marshal(hospitals); err == nil {
			ttl := hs.TTL
			if ttl <= 0 {
				ttl = defaultCacheTTL
			}
			hs.Cache.Set(ctx, key, data, ttl)
		}
	}

	return hospitals, nil
}
