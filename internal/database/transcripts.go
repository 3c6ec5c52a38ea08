package database

import (
	"context"
	"database/sql"
	"fmt"

	"call-pipeline-diagnostics/internal/models"
)

// AssetByFileID fetches the asset row for a file identifier.
// Returns nil when no row exists.
func (c *Client) AssetByFileID(ctx context.Context, fileID string) (*models.Asset, error) {
	const query = `
		SELECT id, fileid, filename, file_size, status, transcription, created_at
		FROM rdt_assets
		WHERE fileid = @p1`

	var a models.Asset
	var fileSize sql.NullInt64
	var status, transcription sql.NullString
	var createdAt sql.NullTime

	row := c.db.QueryRowContext(ctx, query, fileID)
	err := row.Scan(&a.ID, &a.FileID, &a.Filename, &fileSize, &status, &transcription, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query asset %s: %w", fileID, err)
	}

	if fileSize.Valid {
		a.FileSize = fileSize.Int64
	}
	if status.Valid {
		a.Status = status.String
	}
	if transcription.Valid {
		a.Transcription = transcription.String
	}
	if createdAt.Valid {
		a.CreatedAt = createdAt.Time
	}
	return &a, nil
}

// RecentAssets returns the newest n asset rows, newest first.
func (c *Client) RecentAssets(ctx context.Context, n int) ([]models.Asset, error) {
	const query = `
		SELECT TOP (@p1) id, fileid, filename, file_size, status, created_at
		FROM rdt_assets
		ORDER BY id DESC`

	rows, err := c.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("query recent assets: %w", err)
	}
	defer rows.Close()

	var out []models.Asset
	for rows.Next() {
		var a models.Asset
		var fileSize sql.NullInt64
		var status sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(&a.ID, &a.FileID, &a.Filename, &fileSize, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("scan asset row: %w", err)
		}
		if fileSize.Valid {
			a.FileSize = fileSize.Int64
		}
		if status.Valid {
			a.Status = status.String
		}
		if createdAt.Valid {
			a.CreatedAt = createdAt.Time
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ParagraphsByFileID returns the stored transcript paragraphs for a file
// identifier, ordered by paragraph index.
func (c *Client) ParagraphsByFileID(ctx context.Context, fileID string) ([]models.ParagraphRow, error) {
	const query = `
		SELECT id, fileid, paragraph_index, speaker, text, created_at
		FROM rdt_paragraphs
		WHERE fileid = @p1
		ORDER BY paragraph_index`

	rows, err := c.db.QueryContext(ctx, query, fileID)
	if err != nil {
		return nil, fmt.Errorf("query paragraphs for %s: %w", fileID, err)
	}
	defer rows.Close()

	var out []models.ParagraphRow
	for rows.Next() {
		var p models.ParagraphRow
		var speaker sql.NullInt64
		var text sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.FileID, &p.ParagraphIndex, &speaker, &text, &createdAt); err != nil {
			return nil, fmt.Errorf("scan paragraph row: %w", err)
		}
		if speaker.Valid {
			p.Speaker = int(speaker.Int64)
		}
		if text.Valid {
			p.Text = text.String
		}
		if createdAt.Valid {
			p.CreatedAt = createdAt.Time
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SentencesByParagraphID returns a paragraph's sentences in order.
func (c *Client) SentencesByParagraphID(ctx context.Context, paragraphID int64) ([]models.SentenceRow, error) {
	const query = `
		SELECT id, paragraph_id, sentence_index, text
		FROM rdt_sentences
		WHERE paragraph_id = @p1
		ORDER BY sentence_index`

	rows, err := c.db.QueryContext(ctx, query, paragraphID)
	if err != nil {
		return nil, fmt.Errorf("query sentences for paragraph %d: %w", paragraphID, err)
	}
	defer rows.Close()

	var out []models.SentenceRow
	for rows.Next() {
		var s models.SentenceRow
		var text sql.NullString
		if err := rows.Scan(&s.ID, &s.ParagraphID, &s.SentenceIndex, &text); err != nil {
			return nil, fmt.Errorf("scan sentence row: %w", err)
		}
		if text.Valid {
			s.Text = text.String
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
