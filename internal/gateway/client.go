// Package gateway talks to the plan photo GraphQL API.
package gateway

import (
	"PlanPhotos/internal/model"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"

	"github.com/machinebox/graphql"
	"github.com/sirupsen/logrus"
)

// RefetchFunc receives the collection fetched after a mutation completed.
type RefetchFunc func(kind model.Kind, records []model.PhotoRecord)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(log *logrus.Entry) Option {
	return func(c *Client) { c.log = log }
}

// Client is the photo gateway of one plan. After each mutation, whether it
// succeeded or not, the affected collections are fetched again and handed
// to every OnRefetch callback.
type Client struct {
	gql        *graphql.Client
	httpClient *http.Client
	owner      string
	planID     string
	log        *logrus.Entry

	mu        sync.RWMutex
	listeners []RefetchFunc
}

func New(endpoint, owner, planID string, opts ...Option) (*Client, error) {
	if err := validateDocuments(); err != nil {
		return nil, err
	}

	c := &Client{owner: owner, planID: planID, httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = logrus.NewEntry(l)
	}

	c.gql = graphql.NewClient(endpoint, graphql.WithHTTPClient(c.httpClient))
	c.gql.Log = func(s string) { c.log.Trace(s) }

	return c, nil
}

// OnRefetch registers fn for refetch results.
func (c *Client) OnRefetch(fn RefetchFunc) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Client) request(doc string) *graphql.Request {
	req := graphql.NewRequest(doc)
	req.Var("clientName", c.owner)
	req.Var("planId", c.planID)
	return req
}

// FetchPhotos returns the collection ordered by sortIndex.
func (c *Client) FetchPhotos(ctx context.Context, kind model.Kind) ([]model.PhotoRecord, error) {
	doc, field, err := fetchQuery(kind)
	if err != nil {
		return nil, err
	}

	var resp map[string][]model.PhotoRecord
	if err := c.gql.Run(ctx, c.request(doc), &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}

	records := resp[field]
	sort.SliceStable(records, func(i, j int) bool { return records[i].SortIndex < records[j].SortIndex })
	return records, nil
}

func (c *Client) AddPhoto(ctx context.Context, reference string, kind model.Kind) error {
	k, err := model.ParseKind(string(kind))
	if err != nil {
		return err
	}

	req := c.request(addPhotoMutation)
	req.Var("src", reference)
	req.Var("table", string(k))

	err = c.gql.Run(ctx, req, nil)
	c.refetch(ctx, model.Kinds...)
	if err != nil {
		return fmt.Errorf("addPlanPhoto: %w", err)
	}
	return nil
}

func (c *Client) DeletePhoto(ctx context.Context, reference string, sortIndex int, kind model.Kind) error {
	k, err := model.ParseKind(string(kind))
	if err != nil {
		return err
	}
	doc, err := deleteMutation(k)
	if err != nil {
		return err
	}

	req := c.request(doc)
	req.Var("src", reference)
	req.Var("sortIndex", sortIndex)

	err = c.gql.Run(ctx, req, nil)
	c.refetch(ctx, k)
	if err != nil {
		return fmt.Errorf("delete %s photo: %w", k, err)
	}
	return nil
}

func (c *Client) UpdateSortOrder(ctx context.Context, order []model.SortEntry, kind model.Kind) error {
	k, err := model.ParseKind(string(kind))
	if err != nil {
		return err
	}

	req := c.request(updateSortMutation)
	req.Var("sortOrder", order)
	req.Var("table", string(k))

	err = c.gql.Run(ctx, req, nil)
	c.refetch(ctx, model.Kinds...)
	if err != nil {
		return fmt.Errorf("updatePlanPhotoSort: %w", err)
	}
	return nil
}

func (c *Client) refetch(ctx context.Context, kinds ...model.Kind) {
	c.mu.RLock()
	listeners := append([]RefetchFunc(nil), c.listeners...)
	c.mu.RUnlock()

	for _, kind := range kinds {
		records, err := c.FetchPhotos(ctx, kind)
		if err != nil {
			c.log.WithError(err).Warnf("gateway: refetch of %s photos failed", kind)
			continue
		}
		for _, fn := range listeners {
			fn(kind, records)
		}
	}
}
