package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/obi-coffee/tast-server/internal/domain"
	"github.com/obi-coffee/tast-server/internal/id"
	"github.com/obi-coffee/tast-server/internal/sse"
	"github.com/obi-coffee/tast-server/internal/store"
)

// contentColumns is the ordered list of columns selected in content queries.
// Must match the scan order in scanContentItem.
const contentColumns = `id, title, type, format, stage, date, campaign_id, assignee_id, notes, draft_copy, channels, image_urls, created_at, updated_at`

// encodeChannels serializes channels in the structured shape.
func encodeChannels(ch domain.Channels) (string, error) {
	if ch.Secondary == nil {
		ch.Secondary = []string{}
	}
	data, err := json.Marshal(ch)
	if err != nil {
		return "", fmt.Errorf("marshal channels: %w", err)
	}
	return string(data), nil
}

// decodeChannels deserializes a channels column value. Legacy rows hold a
// flat JSON array; those are normalized so the first element becomes the
// primary channel. Empty or unrecognized values decode to empty channels.
func decodeChannels(raw string) domain.Channels {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Channels{Secondary: []string{}}
	}
	if strings.HasPrefix(raw, "[") {
		var flat []string
		if err := json.Unmarshal([]byte(raw), &flat); err != nil {
			return domain.Channels{Secondary: []string{}}
		}
		return domain.NormalizeChannels(flat)
	}
	var ch domain.Channels
	if err := json.Unmarshal([]byte(raw), &ch); err != nil {
		return domain.Channels{Secondary: []string{}}
	}
	if ch.Secondary == nil {
		ch.Secondary = []string{}
	}
	return ch
}

// encodeStringList serializes an ordered string list column.
func encodeStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("marshal string list: %w", err)
	}
	return string(data), nil
}

// decodeStringList deserializes an ordered string list column, mapping
// empty or malformed values to an empty list.
func decodeStringList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	return list
}

// scanContentItem scans a sql.Row (or sql.Rows via its Scan method) into a domain.ContentItem.
func scanContentItem(scanner interface{ Scan(dest ...any) error }) (*domain.ContentItem, error) {
	var item domain.ContentItem

	var (
		channels  string
		imageURLs string
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&item.ID,
		&item.Title,
		&item.Type,
		&item.Format,
		&item.Stage,
		&item.Date,
		&item.CampaignID,
		&item.AssigneeID,
		&item.Notes,
		&item.DraftCopy,
		&channels,
		&imageURLs,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Channels = decodeChannels(channels)
	item.ImageURLs = decodeStringList(imageURLs)

	item.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	item.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// ListItems returns all content items, newest first.
func (s *Store) ListItems(ctx context.Context) ([]domain.ContentItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+contentColumns+` FROM content_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.ContentItem{}
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// GetItem retrieves a content item by its ID.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) GetItem(ctx context.Context, itemID string) (*domain.ContentItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM content_items WHERE id = ?`, itemID)

	item, err := scanContentItem(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// CreateItem inserts a new content item, assigning its id and timestamps.
// Returns the assigned id.
func (s *Store) CreateItem(ctx context.Context, item *domain.ContentItem) (string, error) {
	itemID, err := id.Generate("item")
	if err != nil {
		return "", fmt.Errorf("generate item id: %w", err)
	}

	channels, err := encodeChannels(item.Channels)
	if err != nil {
		return "", err
	}
	imageURLs, err := encodeStringList(item.ImageURLs)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO content_items (`+contentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		itemID,
		item.Title,
		item.Type,
		item.Format,
		item.Stage,
		item.Date,
		item.CampaignID,
		item.AssigneeID,
		item.Notes,
		item.DraftCopy,
		channels,
		imageURLs,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return "", err
	}

	created, err := s.GetItem(ctx, itemID)
	if err != nil {
		return "", fmt.Errorf("reload created item: %w", err)
	}

	s.emitter.Emit(sse.NewContentCreatedEvent(created))
	if err := s.searchIndexer.IndexItem(ctx, created); err != nil {
		s.logger.Warn("failed to index created item",
			slog.String("item_id", itemID),
			slog.String("error", err.Error()))
	}

	return itemID, nil
}

// UpdateItem updates an existing content item. The id and created_at
// columns are never touched.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) UpdateItem(ctx context.Context, itemID string, item *domain.ContentItem) error {
	channels, err := encodeChannels(item.Channels)
	if err != nil {
		return err
	}
	imageURLs, err := encodeStringList(item.ImageURLs)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE content_items
		SET title = ?, type = ?, format = ?, stage = ?, date = ?,
		    campaign_id = ?, assignee_id = ?, notes = ?, draft_copy = ?,
		    channels = ?, image_urls = ?, updated_at = ?
		WHERE id = ?`,
		item.Title,
		item.Type,
		item.Format,
		item.Stage,
		item.Date,
		item.CampaignID,
		item.AssigneeID,
		item.Notes,
		item.DraftCopy,
		channels,
		imageURLs,
		formatTime(time.Now().UTC()),
		itemID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	updated, err := s.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("reload updated item: %w", err)
	}

	s.emitter.Emit(sse.NewContentUpdatedEvent(updated))
	if err := s.searchIndexer.IndexItem(ctx, updated); err != nil {
		s.logger.Warn("failed to index updated item",
			slog.String("item_id", itemID),
			slog.String("error", err.Error()))
	}

	return nil
}

// DeleteItem removes a content item.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) DeleteItem(ctx context.Context, itemID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM content_items WHERE id = ?`, itemID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	s.emitter.Emit(sse.NewContentDeletedEvent(itemID, time.Now().UTC()))
	if err := s.searchIndexer.DeleteItem(ctx, itemID); err != nil {
		s.logger.Warn("failed to remove item from search index",
			slog.String("item_id", itemID),
			slog.String("error", err.Error()))
	}

	return nil
}
