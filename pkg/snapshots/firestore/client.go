package firestore

import (
	"context"
	"fmt"

	fs "cloud.google.com/go/firestore"
)

// DefaultDatabase is the id of a project's default Firestore database.
const DefaultDatabase = "(default)"

// NewClient creates a Firestore client for project. An empty database
// selects DefaultDatabase.
func NewClient(ctx context.Context, projectID, databaseID string) (*fs.Client, error) {
	if databaseID == "" {
		databaseID = DefaultDatabase
	}
	client, err := fs.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client for database %s: %w", databaseID, err)
	}
	return client, nil
}

// QueryOptions shapes the query a list is bound to.
type QueryOptions struct {
	// Collection is a slash-separated collection path.
	Collection string
	// OrderBy is the field to sort on. Empty keeps document id order.
	OrderBy string
	// Descending reverses the sort.
	Descending bool
	// Limit caps the number of documents. Zero means no limit.
	Limit int
}

// Query builds the Firestore query described by opts.
func Query(client *fs.Client, opts QueryOptions) fs.Query {
	q := client.Collection(opts.Collection).Query
	dir := fs.Asc
	if opts.Descending {
		dir = fs.Desc
	}
	switch {
	case opts.OrderBy != "":
		q = q.OrderBy(opts.OrderBy, dir)
	case opts.Descending:
		q = q.OrderBy(fs.DocumentID, dir)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	return q
}
