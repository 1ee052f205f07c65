package store

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyStore persists ledger documents in Valkey.
type ValkeyStore struct {
	client valkey.Client
}

var _ Store = (*ValkeyStore)(nil)

// NewValkeyStore connects to Valkey and verifies the connection with a
// ping.
func NewValkeyStore(address, password string, useTLS bool) (*ValkeyStore, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{address},
		Password:         password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if useTLS {
		opts.TLSConfig = &tls.Config{}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping valkey: %w", err)
	}

	return &ValkeyStore{client: client}, nil
}

func (v *ValkeyStore) Get(ctx context.Context, key string) (string, bool, error) {
	res := v.client.Do(ctx, v.client.B().Get().Key(key).Build())

	value, err := res.ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("valkey get %s: %w", key, err)
	}

	return value, true, nil
}

func (v *ValkeyStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	var cmd valkey.Completed
	if ttl > 0 {
		cmd = v.client.B().Set().Key(key).Value(value).Ex(ttl).Build()
	} else {
		cmd = v.client.B().Set().Key(key).Value(value).Build()
	}

	if err := v.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}

	return nil
}

func (v *ValkeyStore) Close() {
	v.client.Close()
}
