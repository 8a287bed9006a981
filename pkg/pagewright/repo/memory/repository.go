package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pagewright/pagewright/pkg/pagewright"
)

// Repository is an in-memory implementation of pagewright.Repository,
// used by tests and local development.
type Repository struct {
	mu sync.RWMutex

	websites         map[int64]*pagewright.Website
	providerLinks    []pagewright.ProviderLink
	pages            map[int64]*pagewright.Page
	pageTemplates    map[int64]*pagewright.PageTemplate
	contentTemplates map[int64]*pagewright.ContentTemplate
	pageBlocks       map[int64][]pagewright.PageContentBlock
	sharedContent    map[int64]*pagewright.SharedContent
	notifications    map[uuid.UUID]*pagewright.Notification

	nextID int64
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		websites:         make(map[int64]*pagewright.Website),
		pages:            make(map[int64]*pagewright.Page),
		pageTemplates:    make(map[int64]*pagewright.PageTemplate),
		contentTemplates: make(map[int64]*pagewright.ContentTemplate),
		pageBlocks:       make(map[int64][]pagewright.PageContentBlock),
		sharedContent:    make(map[int64]*pagewright.SharedContent),
		notifications:    make(map[uuid.UUID]*pagewright.Notification),
	}
}

func (r *Repository) allocID() int64 {
	r.nextID++
	return r.nextID
}

// Website operations

// AddWebsite seeds a website row. Test helper.
func (r *Repository) AddWebsite(w *pagewright.Website) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w.ID == 0 {
		w.ID = r.allocID()
	}
	r.websites[w.ID] = w
}

func (r *Repository) GetWebsite(ctx context.Context, id int64) (*pagewright.Website, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.websites[id]
	if !ok {
		return nil, pagewright.ErrMissingWebsite
	}
	copied := *w
	return &copied, nil
}

// Library provider link operations

func (r *Repository) ListProviderLinks(ctx context.Context, websiteID int64) ([]pagewright.ProviderLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var links []pagewright.ProviderLink
	for _, link := range r.providerLinks {
		if link.WebsiteID == websiteID {
			links = append(links, link)
		}
	}
	return links, nil
}

func (r *Repository) CreateProviderLink(ctx context.Context, link *pagewright.ProviderLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.providerLinks {
		if existing.WebsiteID == link.WebsiteID && existing.ProviderName == link.ProviderName {
			return pagewright.ErrFolderExists
		}
	}
	r.providerLinks = append(r.providerLinks, *link)
	return nil
}

func (r *Repository) DeleteProviderLink(ctx context.Context, websiteID int64, providerName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, link := range r.providerLinks {
		if link.WebsiteID == websiteID && link.ProviderName == providerName {
			r.providerLinks = append(r.providerLinks[:i], r.providerLinks[i+1:]...)
			return nil
		}
	}
	return nil
}

// Page operations

func (r *Repository) CreatePage(ctx context.Context, page *pagewright.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if page.ID == 0 {
		page.ID = r.allocID()
	}
	copied := *page
	r.pages[page.ID] = &copied
	return nil
}

func (r *Repository) GetPage(ctx context.Context, id int64) (*pagewright.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, ok := r.pages[id]
	if !ok {
		return nil, pagewright.ErrPageNotFound
	}
	copied := *page
	return &copied, nil
}

func (r *Repository) UpdatePage(ctx context.Context, page *pagewright.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pages[page.ID]; !ok {
		return pagewright.ErrPageNotFound
	}
	copied := *page
	r.pages[page.ID] = &copied
	return nil
}

func (r *Repository) ListPagesByWebsite(ctx context.Context, websiteID int64) ([]*pagewright.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var pages []*pagewright.Page
	for _, page := range r.pages {
		if page.WebsiteID == websiteID {
			copied := *page
			pages = append(pages, &copied)
		}
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].ID < pages[j].ID })
	return pages, nil
}

// Page template operations

// AddPageTemplate seeds a page template row. Test helper.
func (r *Repository) AddPageTemplate(tmpl *pagewright.PageTemplate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tmpl.ID == 0 {
		tmpl.ID = r.allocID()
	}
	r.pageTemplates[tmpl.ID] = tmpl
}

func (r *Repository) GetPageTemplate(ctx context.Context, id int64) (*pagewright.PageTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tmpl, ok := r.pageTemplates[id]
	if !ok {
		return nil, pagewright.ErrTemplateNotFound
	}
	copied := *tmpl
	return &copied, nil
}

// Content template operations

func (r *Repository) CreateContentTemplate(ctx context.Context, tmpl *pagewright.ContentTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl.ID == 0 {
		tmpl.ID = r.allocID()
	}
	copied := *tmpl
	r.contentTemplates[tmpl.ID] = &copied
	return nil
}

func (r *Repository) GetContentTemplate(ctx context.Context, id int64) (*pagewright.ContentTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tmpl, ok := r.contentTemplates[id]
	if !ok {
		return nil, pagewright.ErrContentTemplateNotFound
	}
	copied := *tmpl
	return &copied, nil
}

func (r *Repository) GetContentTemplatesByIDs(ctx context.Context, ids []int64) (map[int64]*pagewright.ContentTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[int64]*pagewright.ContentTemplate, len(ids))
	for _, id := range ids {
		if tmpl, ok := r.contentTemplates[id]; ok {
			copied := *tmpl
			result[id] = &copied
		}
	}
	return result, nil
}

func (r *Repository) GetContentTemplateBySlug(ctx context.Context, slug string) (*pagewright.ContentTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, tmpl := range r.contentTemplates {
		if tmpl.Slug == slug {
			copied := *tmpl
			return &copied, nil
		}
	}
	return nil, pagewright.ErrContentTemplateNotFound
}

func (r *Repository) UpdateContentTemplate(ctx context.Context, tmpl *pagewright.ContentTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contentTemplates[tmpl.ID]; !ok {
		return pagewright.ErrContentTemplateNotFound
	}
	copied := *tmpl
	r.contentTemplates[tmpl.ID] = &copied
	return nil
}

// Page content block operations

func (r *Repository) ListPageBlocks(ctx context.Context, pageID int64) ([]pagewright.PageContentBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blocks := r.pageBlocks[pageID]
	out := make([]pagewright.PageContentBlock, len(blocks))
	copy(out, blocks)
	return out, nil
}

func (r *Repository) ReplacePageBlocks(ctx context.Context, pageID int64, blocks []pagewright.PageContentBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]pagewright.PageContentBlock, len(blocks))
	copy(stored, blocks)
	for i := range stored {
		if stored[i].ID == 0 {
			stored[i].ID = r.allocID()
		}
		stored[i].PageID = pageID
	}
	r.pageBlocks[pageID] = stored
	return nil
}

// Shared content operations

func (r *Repository) CreateSharedContent(ctx context.Context, sc *pagewright.SharedContent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.sharedContent {
		if existing.WebsiteID == sc.WebsiteID && existing.Name == sc.Name {
			return pagewright.ErrSharedContentExists
		}
	}

	if sc.ID == 0 {
		sc.ID = r.allocID()
	}
	copied := *sc
	r.sharedContent[sc.ID] = &copied
	return nil
}

func (r *Repository) GetSharedContent(ctx context.Context, id int64) (*pagewright.SharedContent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sc, ok := r.sharedContent[id]
	if !ok {
		return nil, pagewright.ErrSharedContentNotFound
	}
	copied := *sc
	return &copied, nil
}

func (r *Repository) ListSharedContentByWebsite(ctx context.Context, websiteID int64) ([]*pagewright.SharedContent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*pagewright.SharedContent
	for _, sc := range r.sharedContent {
		if sc.WebsiteID == websiteID {
			copied := *sc
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) UpdateSharedContent(ctx context.Context, sc *pagewright.SharedContent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sharedContent[sc.ID]; !ok {
		return pagewright.ErrSharedContentNotFound
	}

	for _, existing := range r.sharedContent {
		if existing.ID != sc.ID && existing.WebsiteID == sc.WebsiteID && existing.Name == sc.Name {
			return pagewright.ErrSharedContentExists
		}
	}

	copied := *sc
	r.sharedContent[sc.ID] = &copied
	return nil
}

func (r *Repository) DeleteSharedContent(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sharedContent[id]; !ok {
		return pagewright.ErrSharedContentNotFound
	}
	delete(r.sharedContent, id)
	return nil
}

// Notification operations

func (r *Repository) CreateNotification(ctx context.Context, n *pagewright.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *n
	r.notifications[n.ID] = &copied
	return nil
}

func (r *Repository) ListNotificationsByUser(ctx context.Context, userID string) ([]*pagewright.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*pagewright.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			copied := *n
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Repository) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notifications[id]
	if !ok {
		return pagewright.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}
