package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pagewright/pagewright/pkg/pagewright"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements pagewright.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) pagewright.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) pagewright.Repository {
	return &Repository{db: pool}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "shared_content") {
				return pagewright.ErrSharedContentExists
			}
			if strings.Contains(pgErr.ConstraintName, "provider_link") {
				return pagewright.ErrFolderExists
			}
			return fmt.Errorf("duplicate entry")
		case "23503": // foreign_key_violation
			return fmt.Errorf("referenced record not found")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Website operations

func (r *Repository) GetWebsite(ctx context.Context, id int64) (*pagewright.Website, error) {
	query := `
        SELECT id, domain, name, created_at, updated_at
        FROM website WHERE id = $1`

	var w pagewright.Website
	err := r.db.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.Domain, &w.Name, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pagewright.ErrMissingWebsite
		}
		return nil, r.handlePostgresError("get website", err)
	}

	return &w, nil
}

// Library provider link operations

func (r *Repository) ListProviderLinks(ctx context.Context, websiteID int64) ([]pagewright.ProviderLink, error) {
	query := `
        SELECT website_id, provider_name, COALESCE(display_name, provider_name)
        FROM library_provider_link
        WHERE website_id = $1
        ORDER BY provider_name`

	rows, err := r.db.Query(ctx, query, websiteID)
	if err != nil {
		return nil, r.handlePostgresError("list provider links", err)
	}
	defer rows.Close()

	var links []pagewright.ProviderLink
	for rows.Next() {
		var link pagewright.ProviderLink
		if err := rows.Scan(&link.WebsiteID, &link.ProviderName, &link.DisplayName); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func (r *Repository) CreateProviderLink(ctx context.Context, link *pagewright.ProviderLink) error {
	query := `
		INSERT INTO library_provider_link (website_id, provider_name, display_name)
		VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, link.WebsiteID, link.ProviderName, link.DisplayName)
	if err != nil {
		return r.handlePostgresError("create provider link", err)
	}
	return nil
}

func (r *Repository) DeleteProviderLink(ctx context.Context, websiteID int64, providerName string) error {
	query := `DELETE FROM library_provider_link WHERE website_id = $1 AND provider_name = $2`

	_, err := r.db.Exec(ctx, query, websiteID, providerName)
	if err != nil {
		return r.handlePostgresError("delete provider link", err)
	}
	return nil
}

// Page operations

func (r *Repository) CreatePage(ctx context.Context, page *pagewright.Page) error {
	query := `
		INSERT INTO page (website_id, title, path, page_template_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		page.WebsiteID, page.Title, page.Path, page.PageTemplateID,
		page.CreatedAt, page.UpdatedAt).Scan(&page.ID)
	if err != nil {
		return r.handlePostgresError("create page", err)
	}
	return nil
}

func (r *Repository) GetPage(ctx context.Context, id int64) (*pagewright.Page, error) {
	query := `
        SELECT id, website_id, title, path, page_template_id, created_at, updated_at
        FROM page WHERE id = $1`

	var page pagewright.Page
	err := r.db.QueryRow(ctx, query, id).Scan(
		&page.ID, &page.WebsiteID, &page.Title, &page.Path,
		&page.PageTemplateID, &page.CreatedAt, &page.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pagewright.ErrPageNotFound
		}
		return nil, r.handlePostgresError("get page", err)
	}

	return &page, nil
}

func (r *Repository) UpdatePage(ctx context.Context, page *pagewright.Page) error {
	query := `
		UPDATE page SET
			title = $2, path = $3, page_template_id = $4, updated_at = $5
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		page.ID, page.Title, page.Path, page.PageTemplateID, page.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update page", err)
	}
	if tag.RowsAffected() == 0 {
		return pagewright.ErrPageNotFound
	}
	return nil
}

func (r *Repository) ListPagesByWebsite(ctx context.Context, websiteID int64) ([]*pagewright.Page, error) {
	query := `
        SELECT id, website_id, title, path, page_template_id, created_at, updated_at
        FROM page WHERE website_id = $1
        ORDER BY title`

	rows, err := r.db.Query(ctx, query, websiteID)
	if err != nil {
		return nil, r.handlePostgresError("list pages", err)
	}
	defer rows.Close()

	var pages []*pagewright.Page
	for rows.Next() {
		var page pagewright.Page
		if err := rows.Scan(
			&page.ID, &page.WebsiteID, &page.Title, &page.Path,
			&page.PageTemplateID, &page.CreatedAt, &page.UpdatedAt); err != nil {
			return nil, err
		}
		pages = append(pages, &page)
	}
	return pages, rows.Err()
}

// Page template operations

func (r *Repository) GetPageTemplate(ctx context.Context, id int64) (*pagewright.PageTemplate, error) {
	query := `
        SELECT id, name, html_structure, created_at, updated_at
        FROM page_template WHERE id = $1`

	var tmpl pagewright.PageTemplate
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tmpl.ID, &tmpl.Name, &tmpl.HTMLStructure, &tmpl.CreatedAt, &tmpl.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pagewright.ErrTemplateNotFound
		}
		return nil, r.handlePostgresError("get page template", err)
	}

	return &tmpl, nil
}

// Content template operations

func (r *Repository) CreateContentTemplate(ctx context.Context, tmpl *pagewright.ContentTemplate) error {
	query := `
		INSERT INTO content_template (name, slug, html_content, css_content, js_content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		tmpl.Name, tmpl.Slug, tmpl.HTMLContent, tmpl.CSSContent, tmpl.JSContent,
		tmpl.CreatedAt, tmpl.UpdatedAt).Scan(&tmpl.ID)
	if err != nil {
		return r.handlePostgresError("create content template", err)
	}
	return nil
}

func (r *Repository) GetContentTemplate(ctx context.Context, id int64) (*pagewright.ContentTemplate, error) {
	query := `
        SELECT id, name, COALESCE(slug, ''), html_content, css_content, js_content, created_at, updated_at
        FROM content_template WHERE id = $1`

	var tmpl pagewright.ContentTemplate
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tmpl.ID, &tmpl.Name, &tmpl.Slug, &tmpl.HTMLContent,
		&tmpl.CSSContent, &tmpl.JSContent, &tmpl.CreatedAt, &tmpl.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pagewright.ErrContentTemplateNotFound
		}
		return nil, r.handlePostgresError("get content template", err)
	}

	return &tmpl, nil
}

func (r *Repository) GetContentTemplatesByIDs(ctx context.Context, ids []int64) (map[int64]*pagewright.ContentTemplate, error) {
	query := `
        SELECT id, name, COALESCE(slug, ''), html_content, css_content, js_content, created_at, updated_at
        FROM content_template WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, r.handlePostgresError("get content templates", err)
	}
	defer rows.Close()

	result := make(map[int64]*pagewright.ContentTemplate, len(ids))
	for rows.Next() {
		var tmpl pagewright.ContentTemplate
		if err := rows.Scan(
			&tmpl.ID, &tmpl.Name, &tmpl.Slug, &tmpl.HTMLContent,
			&tmpl.CSSContent, &tmpl.JSContent, &tmpl.CreatedAt, &tmpl.UpdatedAt); err != nil {
			return nil, err
		}
		result[tmpl.ID] = &tmpl
	}
	return result, rows.Err()
}

func (r *Repository) GetContentTemplateBySlug(ctx context.Context, slug string) (*pagewright.ContentTemplate, error) {
	query := `
        SELECT id, name, COALESCE(slug, ''), html_content, css_content, js_content, created_at, updated_at
        FROM content_template WHERE slug = $1`

	var tmpl pagewright.ContentTemplate
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&tmpl.ID, &tmpl.Name, &tmpl.Slug, &tmpl.HTMLContent,
		&tmpl.CSSContent, &tmpl.JSContent, &tmpl.CreatedAt, &tmpl.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pagewright.ErrContentTemplateNotFound
		}
		return nil, r.handlePostgresError("get content template by slug", err)
	}

	return &tmpl, nil
}

func (r *Repository) UpdateContentTemplate(ctx context.Context, tmpl *pagewright.ContentTemplate) error {
	query := `
		UPDATE content_template SET
			name = $2, html_content = $3, css_content = $4, js_content = $5, updated_at = $6
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		tmpl.ID, tmpl.Name, tmpl.HTMLContent, tmpl.CSSContent, tmpl.JSContent, tmpl.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update content template", err)
	}
	if tag.RowsAffected() == 0 {
		return pagewright.ErrContentTemplateNotFound
	}
	return nil
}

// Page content block operations

func (r *Repository) ListPageBlocks(ctx context.Context, pageID int64) ([]pagewright.PageContentBlock, error) {
	query := `
        SELECT id, page_id, placeholder_id, content_template_id, sort_order,
               COALESCE(instance_name, ''), COALESCE(html_content, ''),
               COALESCE(css_content, ''), COALESCE(js_content, '')
        FROM page_content_block
        WHERE page_id = $1
        ORDER BY placeholder_id, sort_order`

	rows, err := r.db.Query(ctx, query, pageID)
	if err != nil {
		return nil, r.handlePostgresError("list page blocks", err)
	}
	defer rows.Close()

	var blocks []pagewright.PageContentBlock
	for rows.Next() {
		var b pagewright.PageContentBlock
		if err := rows.Scan(
			&b.ID, &b.PageID, &b.PlaceholderID, &b.ContentTemplateID, &b.SortOrder,
			&b.InstanceName, &b.HTMLContent, &b.CSSContent, &b.JSContent); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (r *Repository) ReplacePageBlocks(ctx context.Context, pageID int64, blocks []pagewright.PageContentBlock) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM page_content_block WHERE page_id = $1`, pageID); err != nil {
		return r.handlePostgresError("replace page blocks", err)
	}

	query := `
		INSERT INTO page_content_block
			(page_id, placeholder_id, content_template_id, sort_order,
			 instance_name, html_content, css_content, js_content)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, b := range blocks {
		_, err := r.db.Exec(ctx, query,
			pageID, b.PlaceholderID, b.ContentTemplateID, b.SortOrder,
			b.InstanceName, b.HTMLContent, b.CSSContent, b.JSContent)
		if err != nil {
			return r.handlePostgresError("replace page blocks", err)
		}
	}
	return nil
}

// Shared content operations

func (r *Repository) CreateSharedContent(ctx context.Context, sc *pagewright.SharedContent) error {
	query := `
		INSERT INTO shared_content
			(website_id, name, description, html_content, css_content, js_content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		sc.WebsiteID, sc.Name, sc.Description, sc.HTMLContent,
		sc.CSSContent, sc.JSContent, sc.CreatedAt, sc.UpdatedAt).Scan(&sc.ID)
	if err != nil {
		return r.handlePostgresError("create shared content", err)
	}
	return nil
}

func (r *Repository) GetSharedContent(ctx context.Context, id int64) (*pagewright.SharedContent, error) {
	query := `
        SELECT id, website_id, name, COALESCE(description, ''), html_content,
               COALESCE(css_content, ''), COALESCE(js_content, ''), created_at, updated_at
        FROM shared_content WHERE id = $1`

	var sc pagewright.SharedContent
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sc.ID, &sc.WebsiteID, &sc.Name, &sc.Description, &sc.HTMLContent,
		&sc.CSSContent, &sc.JSContent, &sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pagewright.ErrSharedContentNotFound
		}
		return nil, r.handlePostgresError("get shared content", err)
	}

	return &sc, nil
}

func (r *Repository) ListSharedContentByWebsite(ctx context.Context, websiteID int64) ([]*pagewright.SharedContent, error) {
	query := `
        SELECT id, website_id, name, COALESCE(description, ''), html_content,
               COALESCE(css_content, ''), COALESCE(js_content, ''), created_at, updated_at
        FROM shared_content WHERE website_id = $1
        ORDER BY name`

	rows, err := r.db.Query(ctx, query, websiteID)
	if err != nil {
		return nil, r.handlePostgresError("list shared content", err)
	}
	defer rows.Close()

	var out []*pagewright.SharedContent
	for rows.Next() {
		var sc pagewright.SharedContent
		if err := rows.Scan(
			&sc.ID, &sc.WebsiteID, &sc.Name, &sc.Description, &sc.HTMLContent,
			&sc.CSSContent, &sc.JSContent, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &sc)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateSharedContent(ctx context.Context, sc *pagewright.SharedContent) error {
	query := `
		UPDATE shared_content SET
			name = $2, description = $3, html_content = $4,
			css_content = $5, js_content = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		sc.ID, sc.Name, sc.Description, sc.HTMLContent,
		sc.CSSContent, sc.JSContent, sc.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update shared content", err)
	}
	if tag.RowsAffected() == 0 {
		return pagewright.ErrSharedContentNotFound
	}
	return nil
}

func (r *Repository) DeleteSharedContent(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM shared_content WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete shared content", err)
	}
	if tag.RowsAffected() == 0 {
		return pagewright.ErrSharedContentNotFound
	}
	return nil
}

// Notification operations

func (r *Repository) CreateNotification(ctx context.Context, n *pagewright.Notification) error {
	query := `
		INSERT INTO notification (id, user_id, message, link, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query, n.ID, n.UserID, n.Message, n.Link, n.Read, n.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create notification", err)
	}
	return nil
}

func (r *Repository) ListNotificationsByUser(ctx context.Context, userID string) ([]*pagewright.Notification, error) {
	query := `
        SELECT id, user_id, message, COALESCE(link, ''), read, created_at
        FROM notification WHERE user_id = $1
        ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, r.handlePostgresError("list notifications", err)
	}
	defer rows.Close()

	var out []*pagewright.Notification
	for rows.Next() {
		var n pagewright.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Link, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (r *Repository) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE notification SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("mark notification read", err)
	}
	if tag.RowsAffected() == 0 {
		return pagewright.ErrNotificationNotFound
	}
	return nil
}
