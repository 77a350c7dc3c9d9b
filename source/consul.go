package source

import (
	"context"
	"fmt"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/vtree"
)

// ConsulSourceConfig contains configuration options for the Consul source
type ConsulSourceConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Namespace for Consul Enterprise (optional)
	Namespace string

	// Prefix limits the listing and is removed from every key (optional)
	Prefix string
}

// ConsulSource lists the keys of the Consul KV store.
// Keys are split on "/" and keys ending in "/" become folders.
type ConsulSource struct {
	client *api.Client
	kv     *api.KV

	config *ConsulSourceConfig
}

func NewConsulSource(config *ConsulSourceConfig) (*ConsulSource, error) {
	if config == nil {
		config = &ConsulSourceConfig{}
	}

	// Set defaults
	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}
	if config.Namespace != "" {
		clientConfig.Namespace = config.Namespace
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulSource{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Name returns the identifier name defined for this source
func (*ConsulSource) Name() string {
	return "consul"
}

// Load lists every key below the configured prefix and returns them as a new Content.
func (cs *ConsulSource) Load(ctx context.Context, opts ...vtree.ContentOption) (*vtree.Content, error) {
	queryOpts := (&api.QueryOptions{}).WithContext(ctx)

	keys, _, err := cs.kv.Keys(cs.config.Prefix, "", queryOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	b := NewBuilder()
	if err := addKeys(b, cs.config.Prefix, keys); err != nil {
		return nil, err
	}

	return b.Content(opts...)
}
