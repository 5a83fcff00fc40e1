package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogChecker checks that the curated catalog is readable.
type CatalogChecker interface {
	CheckCatalog(ctx context.Context) error
}
