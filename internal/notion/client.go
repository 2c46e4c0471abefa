// Package notion fetches pages and block trees from the Notion API and maps
// them into the domain model.
package notion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jomei/notionapi"
)

const pageSize = 100

// Client wraps the Notion API client with pagination helpers.
type Client struct {
	api    *notionapi.Client
	logger *slog.Logger
}

// NewClient creates a client authenticated with an integration token.
func NewClient(token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		api:    notionapi.NewClient(notionapi.Token(token)),
		logger: logger,
	}
}

// QueryDatabase returns every row of a database, following pagination.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string) ([]notionapi.Page, error) {
	var pages []notionapi.Page
	var cursor notionapi.Cursor

	for {
		c.logger.Debug("querying database",
			slog.String("database_id", databaseID),
			slog.String("cursor", string(cursor)))
		req := &notionapi.DatabaseQueryRequest{
			StartCursor: cursor,
			PageSize:    pageSize,
		}
		resp, err := c.api.Database.Query(ctx, notionapi.DatabaseID(databaseID), req)
		if err != nil {
			return nil, fmt.Errorf("notion: query database %s: %w", databaseID, err)
		}
		pages = append(pages, resp.Results...)
		if !resp.HasMore {
			break
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}
	return pages, nil
}

// GetPage retrieves a single page by ID.
func (c *Client) GetPage(ctx context.Context, id string) (*notionapi.Page, error) {
	c.logger.Debug("fetching page", slog.String("id", id))
	page, err := c.api.Page.Get(ctx, notionapi.PageID(id))
	if err != nil {
		return nil, fmt.Errorf("notion: get page %s: %w", id, err)
	}
	return page, nil
}

// GetBlockChildren retrieves all child blocks of a block, following
// pagination.
func (c *Client) GetBlockChildren(ctx context.Context, blockID string) ([]notionapi.Block, error) {
	var blocks []notionapi.Block
	var cursor notionapi.Cursor

	for {
		c.logger.Debug("fetching block children",
			slog.String("block_id", blockID),
			slog.String("cursor", string(cursor)))
		pagination := &notionapi.Pagination{
			StartCursor: cursor,
			PageSize:    pageSize,
		}
		resp, err := c.api.Block.GetChildren(ctx, notionapi.BlockID(blockID), pagination)
		if err != nil {
			return nil, fmt.Errorf("notion: get children of %s: %w", blockID, err)
		}
		blocks = append(blocks, resp.Results...)
		if !resp.HasMore {
			break
		}
		cursor = notionapi.Cursor(resp.NextCursor)
	}
	return blocks, nil
}
