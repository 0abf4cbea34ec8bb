package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/dafibh/fortuna/portfolio-backend/internal/websocket"
	"github.com/google/uuid"
)

// MockWorkspaceRepository is a mock implementation of domain.WorkspaceRepository
type MockWorkspaceRepository struct {
	Workspaces map[int32]*domain.Workspace
	ByAuth0ID  map[string]*domain.Workspace
	GetByIDFn  func(id int32) (*domain.Workspace, error)
	// UserAuth0IDs links created workspaces back to ByAuth0ID
	UserAuth0IDs    map[uuid.UUID]string
	CreateForUserFn func(userID uuid.UUID, name string) (*domain.Workspace, error)
}

// NewMockWorkspaceRepository creates a new MockWorkspaceRepository
func NewMockWorkspaceRepository() *MockWorkspaceRepository {
	return &MockWorkspaceRepository{
		Workspaces: make(map[int32]*domain.Workspace),
		ByAuth0ID:  make(map[string]*domain.Workspace),
	}
}

// GetByID retrieves a workspace by ID
func (m *MockWorkspaceRepository) GetByID(ctx context.Context, id int32) (*domain.Workspace, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(id)
	}
	if ws, ok := m.Workspaces[id]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// GetByUserAuth0ID retrieves a workspace by the owner's Auth0 ID
func (m *MockWorkspaceRepository) GetByUserAuth0ID(ctx context.Context, auth0ID string) (*domain.Workspace, error) {
	if ws, ok := m.ByAuth0ID[auth0ID]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// CreateForUser creates a workspace for the user, or returns the existing one
func (m *MockWorkspaceRepository) CreateForUser(ctx context.Context, userID uuid.UUID, name string) (*domain.Workspace, error) {
	if m.CreateForUserFn != nil {
		return m.CreateForUserFn(userID, name)
	}
	for _, ws := range m.Workspaces {
		if ws.UserID == userID {
			return ws, nil
		}
	}
	ws := &domain.Workspace{ID: int32(len(m.Workspaces) + 1), UserID: userID, Name: name}
	m.Workspaces[ws.ID] = ws
	if m.UserAuth0IDs != nil {
		if auth0ID, ok := m.UserAuth0IDs[userID]; ok {
			m.ByAuth0ID[auth0ID] = ws
		}
	}
	return ws, nil
}

// AddWorkspace adds a workspace to the mock repository
func (m *MockWorkspaceRepository) AddWorkspace(workspace *domain.Workspace, auth0ID string) {
	m.Workspaces[workspace.ID] = workspace
	if auth0ID != "" {
		m.ByAuth0ID[auth0ID] = workspace
	}
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	CreateFn func(auth0ID, email string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*domain.User)}
}

// CreateOrGetByAuth0ID returns the stored user, creating it if missing
func (m *MockUserRepository) CreateOrGetByAuth0ID(ctx context.Context, auth0ID, email string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(auth0ID, email)
	}
	if u, ok := m.Users[auth0ID]; ok {
		return u, nil
	}
	u := &domain.User{ID: uuid.New(), Auth0ID: auth0ID, Email: email, CreatedAt: time.Now()}
	m.Users[auth0ID] = u
	return u, nil
}

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	Accounts            map[string]*domain.Account
	GetAllByWorkspaceFn func(workspaceID int32) ([]*domain.Account, error)
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		Accounts: make(map[string]*domain.Account),
	}
}

// GetAllByWorkspace returns the workspace accounts ordered by index
func (m *MockAccountRepository) GetAllByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.Account, error) {
	if m.GetAllByWorkspaceFn != nil {
		return m.GetAllByWorkspaceFn(workspaceID)
	}
	var result []*domain.Account
	for _, acc := range m.Accounts {
		if acc.WorkspaceID == workspaceID {
			result = append(result, acc)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Index < result[j].Index
	})
	return result, nil
}

// GetByID retrieves an account by ID within a workspace
func (m *MockAccountRepository) GetByID(ctx context.Context, workspaceID int32, id string) (*domain.Account, error) {
	acc, ok := m.Accounts[id]
	if !ok || acc.WorkspaceID != workspaceID {
		return nil, domain.ErrAccountNotFound
	}
	return acc, nil
}

// AddAccount adds an account to the mock repository
func (m *MockAccountRepository) AddAccount(account *domain.Account) {
	m.Accounts[account.ID] = account
}

// MockSettingsRepository is a mock implementation of domain.SettingsRepository
type MockSettingsRepository struct {
	mu       sync.Mutex
	Settings map[int32]*domain.Settings
	SaveErr  error
	GetErr   error
	Saves    int
}

// NewMockSettingsRepository creates a new MockSettingsRepository
func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{
		Settings: make(map[int32]*domain.Settings),
	}
}

// Get returns stored settings or ErrSettingsNotFound
func (m *MockSettingsRepository) Get(ctx context.Context, workspaceID int32) (*domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	s, ok := m.Settings[workspaceID]
	if !ok {
		return nil, domain.ErrSettingsNotFound
	}
	return copySettings(s), nil
}

// Save stores the settings
func (m *MockSettingsRepository) Save(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return nil, m.SaveErr
	}
	saved := copySettings(settings)
	if existing, ok := m.Settings[settings.WorkspaceID]; ok {
		saved.DismissedBanners = existing.DismissedBanners
	}
	saved.UpdatedAt = time.Now()
	m.Settings[settings.WorkspaceID] = saved
	m.Saves++
	return copySettings(saved), nil
}

// DismissBanner records a dismissal, creating default settings when needed
func (m *MockSettingsRepository) DismissBanner(ctx context.Context, workspaceID int32, bannerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	s, ok := m.Settings[workspaceID]
	if !ok {
		s = domain.DefaultSettings(workspaceID)
		m.Settings[workspaceID] = s
	}
	s.DismissedBanners[bannerID] = true
	return nil
}

// AddSettings stores settings directly
func (m *MockSettingsRepository) AddSettings(settings *domain.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Settings[settings.WorkspaceID] = copySettings(settings)
}

func copySettings(s *domain.Settings) *domain.Settings {
	c := *s
	c.DismissedBanners = make(map[string]bool, len(s.DismissedBanners))
	for k, v := range s.DismissedBanners {
		c.DismissedBanners[k] = v
	}
	return &c
}

// MockBannerRepository is a mock implementation of domain.BannerRepository
type MockBannerRepository struct {
	Banners []domain.Banner
	ListErr error
}

// NewMockBannerRepository creates a new MockBannerRepository
func NewMockBannerRepository() *MockBannerRepository {
	return &MockBannerRepository{}
}

// ListActive returns the catalog in declaration order
func (m *MockBannerRepository) ListActive(ctx context.Context) ([]domain.Banner, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	result := make([]domain.Banner, len(m.Banners))
	copy(result, m.Banners)
	return result, nil
}

// GetByID retrieves a banner by ID
func (m *MockBannerRepository) GetByID(ctx context.Context, id string) (*domain.Banner, error) {
	for _, b := range m.Banners {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, domain.ErrBannerNotFound
}

// UpdateIconPath sets the stored icon path of a banner
func (m *MockBannerRepository) UpdateIconPath(ctx context.Context, id string, iconPath string) error {
	for i := range m.Banners {
		if m.Banners[i].ID == id {
			m.Banners[i].Content.IconPath = iconPath
			return nil
		}
	}
	return domain.ErrBannerNotFound
}

// AddBanner appends a banner to the catalog
func (m *MockBannerRepository) AddBanner(banner domain.Banner) {
	m.Banners = append(m.Banners, banner)
}

// MockCountervalueRepository is a mock implementation of domain.CountervalueRepository
type MockCountervalueRepository struct {
	Rates []domain.CountervalueRate
	Err   error
}

// NewMockCountervalueRepository creates a new MockCountervalueRepository
func NewMockCountervalueRepository() *MockCountervalueRepository {
	return &MockCountervalueRepository{}
}

// GetRates returns stored rates for the tickers; since is ignored so older
// rates can seed the start of a window.
func (m *MockCountervalueRepository) GetRates(ctx context.Context, fromTickers []string, to string, since time.Time) ([]domain.CountervalueRate, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	wanted := make(map[string]bool, len(fromTickers))
	for _, t := range fromTickers {
		wanted[t] = true
	}
	var result []domain.CountervalueRate
	for _, r := range m.Rates {
		if wanted[r.From] && r.To == to {
			result = append(result, r)
		}
	}
	return result, nil
}

// AddRate appends a rate
func (m *MockCountervalueRepository) AddRate(rate domain.CountervalueRate) {
	m.Rates = append(m.Rates, rate)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent is an event captured by MockEventPublisher
type PublishedEvent struct {
	WorkspaceID int32
	All         bool
	Event       websocket.Event
}

var _ websocket.EventPublisher = (*MockEventPublisher)(nil)

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records a workspace event
func (m *MockEventPublisher) Publish(workspaceID int32, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{WorkspaceID: workspaceID, Event: event})
}

// PublishAll records a broadcast event
func (m *MockEventPublisher) PublishAll(event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{All: true, Event: event})
}

// Published returns a copy of the recorded events
func (m *MockEventPublisher) Published() []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]PublishedEvent, len(m.Events))
	copy(result, m.Events)
	return result
}

// MockObjectStore is an in-memory storage.ObjectStore
type MockObjectStore struct {
	mu        sync.Mutex
	Objects   map[string][]byte
	UploadErr error
}

// NewMockObjectStore creates a new MockObjectStore
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{Objects: make(map[string][]byte)}
}

// Upload stores the object in memory
func (m *MockObjectStore) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[objectPath] = buf.Bytes()
	return objectPath, nil
}

// Delete removes the object
func (m *MockObjectStore) Delete(ctx context.Context, objectPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, objectPath)
	return nil
}

// GeneratePresignedURL returns a deterministic fake URL
func (m *MockObjectStore) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://icons.test/%s?expires=%d", objectPath, int(expiry.Seconds())), nil
}

// MockPageTracker records tracked page views
type MockPageTracker struct {
	mu    sync.Mutex
	Pages []string
}

// TrackPage records the page category
func (m *MockPageTracker) TrackPage(ctx context.Context, category string, workspaceID int32, metrics domain.Metrics) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pages = append(m.Pages, category)
}

// Tracked returns the recorded categories
func (m *MockPageTracker) Tracked() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.Pages))
	copy(result, m.Pages)
	return result
}
