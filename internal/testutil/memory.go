package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"checklist-service/internal/apperror"
	"checklist-service/internal/model"

	"github.com/google/uuid"
)

// MemoryStore is an in-process stand-in for the PostgreSQL schema. It keeps
// the same guarantees the database gives the service: audit stamping on the
// save path, the checklist uniqueness index, the project cascade and the
// provider restrict.
type MemoryStore struct {
	mu  sync.Mutex
	Now func() time.Time

	seq        int
	projects   map[string]*memProject
	providers  map[string]model.ServiceProvider
	checklists map[string]*memChecklist
}

type memProject struct {
	seq int
	row model.Project
}

type memChecklist struct {
	seq int
	row model.Checklist
}

// NewMemoryStore returns an empty store stamped with the wall clock
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Now:        func() time.Time { return time.Now().UTC() },
		projects:   make(map[string]*memProject),
		providers:  make(map[string]model.ServiceProvider),
		checklists: make(map[string]*memChecklist),
	}
}

// Projects returns the project repository view of the store
func (s *MemoryStore) Projects() *MemoryProjects { return &MemoryProjects{s: s} }

// ServiceProviders returns the provider repository view of the store
func (s *MemoryStore) ServiceProviders() *MemoryServiceProviders { return &MemoryServiceProviders{s: s} }

// Checklists returns the checklist repository view of the store
func (s *MemoryStore) Checklists() *MemoryChecklists { return &MemoryChecklists{s: s} }

// ChecklistCount returns the number of stored checklists across all projects
func (s *MemoryStore) ChecklistCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.checklists)
}

func (s *MemoryStore) nextSeq() int {
	s.seq++
	return s.seq
}

// checklistCopy attaches the provider the way a preload would
func (s *MemoryStore) checklistCopy(c model.Checklist) model.Checklist {
	if p, ok := s.providers[c.SupplierCode]; ok {
		provider := p
		c.ServiceProvider = &provider
	}
	return c
}

func (s *MemoryStore) sortedChecklists(projectID string) []model.Checklist {
	rows := make([]*memChecklist, 0)
	for _, c := range s.checklists {
		if c.row.ProjectID == projectID {
			rows = append(rows, c)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	out := make([]model.Checklist, 0, len(rows))
	for _, c := range rows {
		out = append(out, s.checklistCopy(c.row))
	}
	return out
}

func (s *MemoryStore) tripleTaken(projectID, supplierCode, documentName, exceptID string) bool {
	for id, c := range s.checklists {
		if id == exceptID {
			continue
		}
		if c.row.ProjectID == projectID && c.row.SupplierCode == supplierCode && c.row.DocumentName == documentName {
			return true
		}
	}
	return false
}

// MemoryProjects implements the project repository over a MemoryStore
type MemoryProjects struct{ s *MemoryStore }

func (r *MemoryProjects) Create(_ context.Context, project *model.Project, actor string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	if _, ok := r.s.projects[project.ID]; ok {
		return fmt.Errorf("create project: %w", apperror.ErrConflict)
	}
	project.MarkCreated(actor, r.s.Now())
	project.LastUpdatedAt = nil
	project.LastUpdatedBy = nil

	row := *project
	row.Checklists = nil
	r.s.projects[project.ID] = &memProject{seq: r.s.nextSeq(), row: row}
	return nil
}

func (r *MemoryProjects) FindByID(_ context.Context, id string) (*model.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.projects[id]
	if !ok {
		return nil, fmt.Errorf("find project: %w", apperror.ErrNotFound)
	}
	out := p.row
	out.Checklists = r.s.sortedChecklists(id)
	return &out, nil
}

func (r *MemoryProjects) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.projects[id]
	return ok, nil
}

func (r *MemoryProjects) List(_ context.Context, page, limit int) ([]model.Project, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := make([]*memProject, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		rows = append(rows, p)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	out := make([]model.Project, 0, limit)
	start := (page - 1) * limit
	for i := start; i >= 0 && i < len(rows) && len(out) < limit; i++ {
		out = append(out, rows[i].row)
	}
	return out, int64(len(rows)), nil
}

func (r *MemoryProjects) Update(_ context.Context, project *model.Project, actor string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.projects[project.ID]
	if !ok {
		return apperror.ErrNotFound
	}
	project.MarkUpdated(actor, r.s.Now())
	p.row.Name = project.Name
	p.row.Region = project.Region
	p.row.LastUpdatedAt = project.LastUpdatedAt
	p.row.LastUpdatedBy = project.LastUpdatedBy
	return nil
}

func (r *MemoryProjects) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(r.s.projects, id)
	for cid, c := range r.s.checklists {
		if c.row.ProjectID == id {
			delete(r.s.checklists, cid)
		}
	}
	return nil
}

// MemoryServiceProviders implements the provider repository over a MemoryStore
type MemoryServiceProviders struct{ s *MemoryStore }

func (r *MemoryServiceProviders) Create(_ context.Context, provider *model.ServiceProvider, actor string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.providers[provider.SupplierCode]; ok {
		return fmt.Errorf("create service provider: %w", apperror.ErrConflict)
	}
	provider.MarkCreated(actor, r.s.Now())
	provider.LastUpdatedAt = nil
	provider.LastUpdatedBy = nil
	r.s.providers[provider.SupplierCode] = *provider
	return nil
}

func (r *MemoryServiceProviders) FindByCode(_ context.Context, code string) (*model.ServiceProvider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.providers[code]
	if !ok {
		return nil, fmt.Errorf("find service provider: %w", apperror.ErrNotFound)
	}
	return &p, nil
}

func (r *MemoryServiceProviders) List(_ context.Context, page, limit int) ([]model.ServiceProvider, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	codes := make([]string, 0, len(r.s.providers))
	for code := range r.s.providers {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]model.ServiceProvider, 0, limit)
	start := (page - 1) * limit
	for i := start; i >= 0 && i < len(codes) && len(out) < limit; i++ {
		out = append(out, r.s.providers[codes[i]])
	}
	return out, int64(len(codes)), nil
}

func (r *MemoryServiceProviders) Update(_ context.Context, provider *model.ServiceProvider, actor string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.providers[provider.SupplierCode]
	if !ok {
		return apperror.ErrNotFound
	}
	provider.MarkUpdated(actor, r.s.Now())
	stored.SupplierName = provider.SupplierName
	stored.LastUpdatedAt = provider.LastUpdatedAt
	stored.LastUpdatedBy = provider.LastUpdatedBy
	r.s.providers[provider.SupplierCode] = stored
	return nil
}

func (r *MemoryServiceProviders) Delete(_ context.Context, code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.providers[code]; !ok {
		return apperror.ErrNotFound
	}
	for _, c := range r.s.checklists {
		if c.row.SupplierCode == code {
			return fmt.Errorf("delete service provider: %w", apperror.ErrConflict)
		}
	}
	delete(r.s.providers, code)
	return nil
}

// MemoryChecklists implements the checklist repository over a MemoryStore
type MemoryChecklists struct{ s *MemoryStore }

func (r *MemoryChecklists) Create(_ context.Context, checklist *model.Checklist, provider *model.ServiceProvider, actor string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.Now()
	if _, ok := r.s.projects[checklist.ProjectID]; !ok {
		return fmt.Errorf("create checklist: %w", apperror.ErrNotFound)
	}
	if r.s.tripleTaken(checklist.ProjectID, checklist.SupplierCode, checklist.DocumentName, "") {
		return fmt.Errorf("create checklist: %w", apperror.ErrConflict)
	}
	if _, ok := r.s.providers[checklist.SupplierCode]; !ok {
		if provider == nil {
			return fmt.Errorf("create checklist: %w", apperror.ErrNotFound)
		}
		provider.MarkCreated(actor, now)
		r.s.providers[provider.SupplierCode] = *provider
	}

	if checklist.ID == "" {
		checklist.ID = uuid.NewString()
	}
	checklist.MarkCreated(actor, now)
	checklist.LastUpdatedAt = nil
	checklist.LastUpdatedBy = nil

	row := *checklist
	row.ServiceProvider = nil
	r.s.checklists[checklist.ID] = &memChecklist{seq: r.s.nextSeq(), row: row}
	return nil
}

func (r *MemoryChecklists) FindByID(_ context.Context, id string) (*model.Checklist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.checklists[id]
	if !ok {
		return nil, fmt.Errorf("find checklist: %w", apperror.ErrNotFound)
	}
	out := r.s.checklistCopy(c.row)
	return &out, nil
}

func (r *MemoryChecklists) ListByProject(_ context.Context, projectID string) ([]model.Checklist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sortedChecklists(projectID), nil
}

func (r *MemoryChecklists) Update(_ context.Context, checklist *model.Checklist, actor string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.checklists[checklist.ID]
	if !ok {
		return apperror.ErrNotFound
	}
	if r.s.tripleTaken(c.row.ProjectID, c.row.SupplierCode, checklist.DocumentName, checklist.ID) {
		return fmt.Errorf("update checklist: %w", apperror.ErrConflict)
	}
	checklist.MarkUpdated(actor, r.s.Now())
	c.row.DocumentName = checklist.DocumentName
	c.row.IsChecked = checklist.IsChecked
	c.row.LastUpdatedAt = checklist.LastUpdatedAt
	c.row.LastUpdatedBy = checklist.LastUpdatedBy
	return nil
}

func (r *MemoryChecklists) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.checklists[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(r.s.checklists, id)
	return nil
}
