// Package firestoredb implements the service.Store interface using Cloud Firestore.
package firestoredb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/charmbracelet/log"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"taskman/internal/config"
	"taskman/internal/service"
)

const (
	// EmulatorHostEnv is read by the Firestore SDK to target an emulator.
	EmulatorHostEnv = "FIRESTORE_EMULATOR_HOST"

	// OAuth scope for Firestore
	datastoreScope = "https://www.googleapis.com/auth/datastore"
)

// document is the stored shape of a task.
type document struct {
	Category    string `firestore:"category"`
	Description string `firestore:"description"`
	Status      bool   `firestore:"status"`
}

// Client implements service.Store using Cloud Firestore.
type Client struct {
	client     *firestore.Client
	collection string
	timeout    time.Duration
}

// New opens a Firestore session for cfg.ProjectID.
// Credentials come from cfg.Credentials, or Application Default Credentials
// when it is empty. With cfg.EmulatorHost set no credentials are loaded.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Client, error) {
	var opts []option.ClientOption

	switch {
	case cfg.UsesEmulator():
		if err := os.Setenv(EmulatorHostEnv, cfg.EmulatorHost); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", EmulatorHostEnv, err)
		}
		logger.Debug("using firestore emulator", "host", cfg.EmulatorHost)
	case cfg.Credentials != "":
		keyJSON, err := os.ReadFile(cfg.Credentials)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read %s: %w", service.ErrCredentials, cfg.Credentials, err)
		}
		creds, err := google.CredentialsFromJSON(ctx, keyJSON, datastoreScope)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", service.ErrCredentials, cfg.Credentials, err)
		}
		opts = append(opts, option.WithCredentials(creds))
		logger.Debug("loaded credentials", "file", cfg.Credentials)
	default:
		logger.Debug("using application default credentials")
	}

	fsClient, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	logger.Debug("store session opened", "project", cfg.ProjectID, "collection", cfg.Collection)

	return &Client{
		client:     fsClient,
		collection: cfg.Collection,
		timeout:    cfg.RequestTimeout,
	}, nil
}

// NewWithClient wraps an existing Firestore client (for testing).
func NewWithClient(fsClient *firestore.Client, collection string) *Client {
	if collection == "" {
		collection = config.DefaultCollection
	}
	return &Client{client: fsClient, collection: collection}
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// withTimeout applies the configured per-call limit, if any.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) tasks() *firestore.CollectionRef {
	return c.client.Collection(c.collection)
}

// Query returns all tasks matching filter, in the order Firestore returns them.
func (c *Client) Query(ctx context.Context, filter service.Filter) ([]service.Task, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	q := buildQuery(c.tasks().Query, filter)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var result []service.Task
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, wrapError("query", err)
		}

		var doc document
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode task %s: %w", snap.Ref.ID, err)
		}
		result = append(result, toTask(snap.Ref.ID, doc))
	}

	return result, nil
}

// Insert creates a new open task under a generated document ID.
func (c *Client) Insert(ctx context.Context, category, description string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	ref := c.tasks().NewDoc()
	_, err := ref.Set(ctx, document{
		Category:    category,
		Description: description,
		Status:      true,
	})
	if err != nil {
		return "", wrapError("insert", err)
	}
	return ref.ID, nil
}

// Delete removes a task. Firestore treats deleting a missing document as success.
func (c *Client) Delete(ctx context.Context, id string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if _, err := c.tasks().Doc(id).Delete(ctx); err != nil {
		return wrapError("delete", err)
	}
	return nil
}

// SetFields applies a partial update. All fields are written in one request,
// so they change together or not at all.
func (c *Client) SetFields(ctx context.Context, id string, fields service.Fields) error {
	if len(fields) == 0 {
		return nil
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if _, err := c.tasks().Doc(id).Update(ctx, toUpdates(fields)); err != nil {
		return wrapError("update", err)
	}
	return nil
}

// buildQuery adds an equality clause for every constraint in filter.
func buildQuery(q firestore.Query, filter service.Filter) firestore.Query {
	if filter.Category != nil {
		q = q.WhereEntity(firestore.PropertyFilter{
			Path:     service.FieldCategory,
			Operator: "==",
			Value:    *filter.Category,
		})
	}
	if filter.Status != nil {
		q = q.WhereEntity(firestore.PropertyFilter{
			Path:     service.FieldStatus,
			Operator: "==",
			Value:    *filter.Status,
		})
	}
	return q
}

func toTask(id string, doc document) service.Task {
	return service.Task{
		ID:          id,
		Category:    doc.Category,
		Description: doc.Description,
		Status:      doc.Status,
	}
}

// toUpdates converts fields to Firestore updates in key order.
func toUpdates(fields service.Fields) []firestore.Update {
	paths := make([]string, 0, len(fields))
	for p := range fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	updates := make([]firestore.Update, 0, len(paths))
	for _, p := range paths {
		updates = append(updates, firestore.Update{Path: p, Value: fields[p]})
	}
	return updates
}

// wrapError maps gRPC status codes onto the service sentinel errors.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, service.ErrTimeout)
	}

	var sentinel error
	switch status.Code(err) {
	case codes.NotFound:
		sentinel = service.ErrNotFound
	case codes.PermissionDenied, codes.Unauthenticated:
		sentinel = service.ErrPermission
	case codes.DeadlineExceeded:
		sentinel = service.ErrTimeout
	case codes.Unavailable:
		sentinel = service.ErrUnavailable
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, sentinel, err)
}
