package archivestore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/commit-canvas/internal/domain/chart"
)

// ValkeyStore caches archives in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "contribgrid"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (chart.Archive, bool, error) {
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return chart.Archive{}, false, nil
		}
		return chart.Archive{}, false, err
	}
	var archive chart.Archive
	if err := json.Unmarshal(payload, &archive); err != nil {
		return chart.Archive{}, false, err
	}
	return archive, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, key string, archive chart.Archive, ttl time.Duration) error {
	payload, err := json.Marshal(archive)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(valkey.BinaryString(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(key string) string {
	return fmt.Sprintf("%s:archive:%s", s.prefix, key)
}

var _ chart.ArchiveStore = (*ValkeyStore)(nil)
