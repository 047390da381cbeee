package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/obi-coffee/tast-server/internal/domain"
	"github.com/obi-coffee/tast-server/internal/id"
	"github.com/obi-coffee/tast-server/internal/sse"
	"github.com/obi-coffee/tast-server/internal/store"
)

// campaignColumns is the ordered list of columns selected in campaign queries.
// Must match the scan order in scanCampaign.
const campaignColumns = `id, name, key_message, drop_date, big_think, created_at, updated_at`

// scanCampaign scans a sql.Row (or sql.Rows via its Scan method) into a domain.Campaign.
func scanCampaign(scanner interface{ Scan(dest ...any) error }) (*domain.Campaign, error) {
	var c domain.Campaign

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&c.ID,
		&c.Name,
		&c.KeyMessage,
		&c.DropDate,
		&c.BigThink,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// ListCampaigns returns all campaigns, newest first.
func (s *Store) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []domain.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return campaigns, nil
}

// GetCampaign retrieves a campaign by its ID.
// Returns store.ErrNotFound if the campaign does not exist.
func (s *Store) GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = ?`, campaignID)

	c, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCampaign inserts a new campaign, assigning its id and timestamps.
// Returns the assigned id.
func (s *Store) CreateCampaign(ctx context.Context, campaign *domain.Campaign) (string, error) {
	campaignID, err := id.Generate("camp")
	if err != nil {
		return "", fmt.Errorf("generate campaign id: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO campaigns (`+campaignColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		campaignID,
		campaign.Name,
		campaign.KeyMessage,
		campaign.DropDate,
		campaign.BigThink,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return "", err
	}

	created, err := s.GetCampaign(ctx, campaignID)
	if err != nil {
		return "", fmt.Errorf("reload created campaign: %w", err)
	}

	s.emitter.Emit(sse.NewCampaignCreatedEvent(created))
	return campaignID, nil
}

// UpdateCampaign updates an existing campaign. The id and created_at
// columns are never touched.
// Returns store.ErrNotFound if the campaign does not exist.
func (s *Store) UpdateCampaign(ctx context.Context, campaignID string, campaign *domain.Campaign) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE campaigns
		SET name = ?, key_message = ?, drop_date = ?, big_think = ?, updated_at = ?
		WHERE id = ?`,
		campaign.Name,
		campaign.KeyMessage,
		campaign.DropDate,
		campaign.BigThink,
		formatTime(time.Now().UTC()),
		campaignID,
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

	updated, err := s.GetCampaign(ctx, campaignID)
	if err != nil {
		return fmt.Errorf("reload updated campaign: %w", err)
	}

	s.emitter.Emit(sse.NewCampaignUpdatedEvent(updated))
	return nil
}

// DeleteCampaign removes a campaign. Items referencing it keep their
// campaign_id; orphaned references are tolerated, never cascaded.
// Returns store.ErrNotFound if the campaign does not exist.
func (s *Store) DeleteCampaign(ctx context.Context, campaignID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM campaigns WHERE id = ?`, campaignID)
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

	s.emitter.Emit(sse.NewCampaignDeletedEvent(campaignID, time.Now().UTC()))
	return nil
}
