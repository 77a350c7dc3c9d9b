package source

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParseAddress creates a Source from a protocol-prefixed address:
//
//	:demo:
//	text://<file>
//	yaml://<file>
//	local://<directory>
//	sqlite://<file>?table=<table>
//	postgres://<user>:<pass>@<host>:<port>/<db>?table=<table>
//	s3://<access>:<secret>@<endpoint>/<bucket>/<prefix>?ssl=true
//	consul://<token>@<host>:<port>/<prefix>?dc=<datacenter>&ns=<namespace>
func ParseAddress(ctx context.Context, address string) (Source, error) {
	// Format address
	address = strings.TrimSpace(address)
	// Quick check to identify if we work with a possibly valid address
	if !strings.Contains(address, ":") {
		return nil, fmt.Errorf("failed to parse address '%s': %w", address, ErrMalformedAddress)
	}
	// Special 'direct no address declarations'
	switch address {
	case ":demo:":
		return NewDemoSource(), nil
	}
	// Protocol-based parsing
	switch {
	case strings.HasPrefix(address, "text://"):
		return parseFileAddress(address, "text://", func(p string) Source { return NewTextSource(p) })
	case strings.HasPrefix(address, "yaml://"):
		return parseFileAddress(address, "yaml://", func(p string) Source { return NewYAMLSource(p) })
	case strings.HasPrefix(address, "local://"):
		return parseFileAddress(address, "local://", func(p string) Source { return NewLocalSource(p) })
	case strings.HasPrefix(address, "direct://"):
		return parseFileAddress(address, "direct://", func(p string) Source { return NewLocalSource(p) })
	case strings.HasPrefix(address, "sqlite://"):
		return parseSqliteAddress(strings.TrimPrefix(address, "sqlite://"))
	case strings.HasPrefix(address, "postgres://"),
		strings.HasPrefix(address, "postgresql://"):
		return parsePostgresAddress(ctx, address)
	case strings.HasPrefix(address, "s3://"):
		return parseS3Address(strings.TrimPrefix(address, "s3://"))
	case strings.HasPrefix(address, "minio://"):
		return parseS3Address(strings.TrimPrefix(address, "minio://"))
	case strings.HasPrefix(address, "consul://"):
		return parseConsulAddress(address)
	}

	return nil, fmt.Errorf("failed to parse address '%s': %w", address, ErrUnknownProtocol)
}

func parseFileAddress(address, protocol string, create func(string) Source) (Source, error) {
	p := strings.TrimPrefix(address, protocol)
	if p == "" {
		return nil, fmt.Errorf("failed to parse address '%s': %w", address, ErrMalformedAddress)
	}
	return create(p), nil
}

func parseSqliteAddress(address string) (Source, error) {
	p, rawQuery, _ := strings.Cut(address, "?")
	if p == "" {
		return nil, fmt.Errorf("failed to parse sqlite address: %w", ErrMalformedAddress)
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sqlite address: %w", ErrMalformedAddress)
	}

	return NewSQLiteSource(p, query.Get("table"))
}

func parsePostgresAddress(ctx context.Context, address string) (Source, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres address: %w", ErrMalformedAddress)
	}

	// The table parameter is ours, everything else belongs to the connection string
	query := u.Query()
	table := query.Get("table")
	query.Del("table")
	u.RawQuery = query.Encode()

	return NewPostgresSource(ctx, u.String(), table)
}

func parseS3Address(address string) (Source, error) {
	u, err := url.Parse("s3://" + address)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("failed to parse s3 address: %w", ErrMalformedAddress)
	}

	bucket, prefix, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if bucket == "" {
		return nil, fmt.Errorf("failed to parse s3 address: missing bucket: %w", ErrMalformedAddress)
	}

	config := &S3SourceConfig{
		Endpoint: u.Host,
		Bucket:   bucket,
		Prefix:   prefix,
	}

	if u.User != nil {
		config.AccessKey = u.User.Username()
		config.SecretKey, _ = u.User.Password()
	}

	if ssl := u.Query().Get("ssl"); ssl != "" {
		useSSL, err := strconv.ParseBool(ssl)
		if err != nil {
			return nil, fmt.Errorf("failed to parse s3 address: invalid ssl value '%s': %w", ssl, ErrMalformedAddress)
		}
		config.UseSSL = useSSL
	}

	return NewS3Source(config)
}

func parseConsulAddress(address string) (Source, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("failed to parse consul address: %w", ErrMalformedAddress)
	}

	config := &ConsulSourceConfig{
		Address:    u.Host,
		Prefix:     strings.TrimPrefix(u.Path, "/"),
		Datacenter: u.Query().Get("dc"),
		Namespace:  u.Query().Get("ns"),
	}

	if u.User != nil {
		config.Token = u.User.Username()
	}

	return NewConsulSource(config)
}
