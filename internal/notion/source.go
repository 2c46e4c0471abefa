package notion

import (
	"context"
	"sync"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/render"
)

// Source supplies the pages of one database and resolves sibling pages for
// link rendering. The page cache is shared across parallel compiles, so all
// access to it is mutex-guarded.
type Source struct {
	client     *Client
	databaseID string

	mu    sync.Mutex
	cache map[string]*models.Page
}

// Verify *Source satisfies the renderer's lookup contract at compile time.
var _ render.PageLookup = (*Source)(nil)

// NewSource creates a page source for one database.
func NewSource(client *Client, databaseID string) *Source {
	return &Source{
		client:     client,
		databaseID: databaseID,
		cache:      make(map[string]*models.Page),
	}
}

// Pages fetches every row of the database along with its block tree, priming
// the lookup cache as it goes.
func (s *Source) Pages(ctx context.Context) ([]*models.Page, error) {
	rows, err := s.client.QueryDatabase(ctx, s.databaseID)
	if err != nil {
		return nil, err
	}
	pages := make([]*models.Page, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		blocks, err := s.client.GetBlockChildren(ctx, string(row.ID))
		if err != nil {
			return nil, err
		}
		page := MapPage(row, blocks)
		pages = append(pages, page)
		s.put(page)
	}
	return pages, nil
}

// GetPage implements render.PageLookup. Rows already fetched are served from
// the cache; anything else costs one API call for the page metadata alone,
// since link resolution never needs the target's blocks.
func (s *Source) GetPage(ctx context.Context, id string) (*models.Page, error) {
	if p := s.get(id); p != nil {
		return p, nil
	}
	raw, err := s.client.GetPage(ctx, id)
	if err != nil {
		return nil, err
	}
	page := MapPage(raw, nil)
	s.put(page)
	return page, nil
}

func (s *Source) get(id string) *models.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache[id]
}

func (s *Source) put(p *models.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[p.ID] = p
}
