package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/fleetops/maintenance-service/internal/domain"
)

// AssetDirectory resolves an asset reference to its display name. Used
// for presentation only; references are never validated against it.
type AssetDirectory interface {
	DisplayName(ctx context.Context, assetType domain.AssetType, assetID string) (string, error)
}

type assetDirectory struct {
	pool *pgxpool.Pool
}

// NewAssetDirectory builds the pgx-backed asset lookup.
func NewAssetDirectory(pool *pgxpool.Pool) AssetDirectory {
	return &assetDirectory{pool: pool}
}

func (d *assetDirectory) DisplayName(ctx context.Context, assetType domain.AssetType, assetID string) (string, error) {
	const query = `SELECT display_name FROM assets WHERE asset_type=$1 AND id=$2`
	var name string
	if err := d.pool.QueryRow(ctx, query, assetType, assetID).Scan(&name); err != nil {
		return "", err
	}
	return name, nil
}

type cachedAssetDirectory struct {
	next   AssetDirectory
	client *redis.Client
	ttl    time.Duration
}

// NewCachedAssetDirectory wraps a directory with a redis read-through
// cache. A cache fault falls through to the underlying lookup.
func NewCachedAssetDirectory(next AssetDirectory, client *redis.Client, ttl time.Duration) AssetDirectory {
	return &cachedAssetDirectory{next: next, client: client, ttl: ttl}
}

func (d *cachedAssetDirectory) DisplayName(ctx context.Context, assetType domain.AssetType, assetID string) (string, error) {
	key := "asset:name:" + string(assetType) + ":" + assetID
	if d.client != nil {
		if name, err := d.client.Get(ctx, key).Result(); err == nil {
			return name, nil
		}
	}
	name, err := d.next.DisplayName(ctx, assetType, assetID)
	if err != nil {
		return "", err
	}
	if d.client != nil {
		_ = d.client.Set(ctx, key, name, d.ttl).Err()
	}
	return name, nil
}
