package config

import (
	"context"
	"fmt"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// LoadEtcd fetches and parses a schema document stored as YAML under the
// given etcd key. Serving the schema from etcd lets multiple API replicas
// resolve the same ordered type list, so all replicas issue identical tags.
//
// Returns ErrSchemaNotFound if the key has no value. The caller owns the
// client's lifecycle.
//
// Example:
//
//	cli, err := clientv3.New(clientv3.Config{Endpoints: endpoints})
//	if err != nil {
//	    return err
//	}
//	defer cli.Close()
//
//	schema, err := config.LoadEtcd(ctx, cli, "/relay/schema")
func LoadEtcd(ctx context.Context, cli *clientv3.Client, key string) (*Schema, error) {
	resp, err := cli.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("config: fetch schema from etcd key %s: %w", key, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, fmt.Errorf("%w: etcd key %s", ErrSchemaNotFound, key)
	}
	return Parse(resp.Kvs[0].Value)
}
