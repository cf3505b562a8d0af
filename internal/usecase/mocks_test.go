package usecase

import (
	"context"
	"sync"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/repository"
)

type mockUserRepository struct {
	mu      sync.Mutex
	byID    map[string]domain.User
	byName  map[string]domain.User
	created []domain.User

	createErr error
	updateErr error
	updated   []domain.User
}

func newMockUserRepository(users ...domain.User) *mockUserRepository {
	m := &mockUserRepository{
		byID:   make(map[string]domain.User),
		byName: make(map[string]domain.User),
	}
	for _, u := range users {
		m.byID[u.ID] = u
		m.byName[u.Username] = u
	}
	return m
}

func (m *mockUserRepository) Create(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.byName[user.Username]; exists {
		return repository.ErrDuplicate
	}
	m.byID[user.ID] = user
	m.byName[user.Username] = user
	m.created = append(m.created, user)
	return nil
}

func (m *mockUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.byID[id]; ok {
		copy := user
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.byName[username]; ok {
		copy := user
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) UpdateProfile(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.byID[user.ID]; !ok {
		return repository.ErrNotFound
	}
	m.byID[user.ID] = user
	m.updated = append(m.updated, user)
	return nil
}

type mockSecretRepository struct {
	mu      sync.Mutex
	secrets []domain.TOTPSecret

	createErr   error
	listErr     error
	enableErr   error
	enableCalls []string
}

func (m *mockSecretRepository) Create(_ context.Context, secret domain.TOTPSecret) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.secrets = append(m.secrets, secret)
	return nil
}

func (m *mockSecretRepository) ListByUser(_ context.Context, userID string) ([]domain.TOTPSecret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.TOTPSecret, 0)
	for _, s := range m.secrets {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSecretRepository) ListEnabledByUser(_ context.Context, userID string) ([]domain.TOTPSecret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.TOTPSecret, 0)
	for _, s := range m.secrets {
		if s.UserID == userID && s.Enabled {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSecretRepository) Enable(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enableErr != nil {
		return false, m.enableErr
	}
	m.enableCalls = append(m.enableCalls, id)
	for i, s := range m.secrets {
		if s.ID == id {
			if s.Enabled {
				return false, nil
			}
			m.secrets[i].Enabled = true
			return true, nil
		}
	}
	return false, nil
}

type mockEventRepository struct {
	mu        sync.Mutex
	byID      map[string]domain.Event
	created   []domain.Event
	attending map[string][]string // event id -> user ids

	sharedErr error
}

func newMockEventRepository(events ...domain.Event) *mockEventRepository {
	m := &mockEventRepository{
		byID:      make(map[string]domain.Event),
		attending: make(map[string][]string),
	}
	for _, e := range events {
		m.byID[e.ID] = e
	}
	return m
}

func (m *mockEventRepository) Create(_ context.Context, event domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[event.ID] = event
	m.created = append(m.created, event)
	return nil
}

func (m *mockEventRepository) GetByID(_ context.Context, id string) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if event, ok := m.byID[id]; ok {
		copy := event
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockEventRepository) List(_ context.Context) ([]domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Event, 0, len(m.created))
	out = append(out, m.created...)
	for _, e := range m.byID {
		var seen bool
		for _, c := range m.created {
			if c.ID == e.ID {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEventRepository) ListByVenueIDs(_ context.Context, venueIDs []string) ([]domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[string]bool, len(venueIDs))
	for _, id := range venueIDs {
		wanted[id] = true
	}
	out := make([]domain.Event, 0)
	for _, e := range m.byID {
		if wanted[e.VenueID] {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEventRepository) Attend(_ context.Context, eventID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.attending[eventID] {
		if existing == userID {
			return nil
		}
	}
	m.attending[eventID] = append(m.attending[eventID], userID)
	return nil
}

func (m *mockEventRepository) Unattend(_ context.Context, eventID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := m.attending[eventID]
	for i, existing := range users {
		if existing == userID {
			m.attending[eventID] = append(users[:i], users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockEventRepository) ListAttending(_ context.Context, userID string) ([]domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Event, 0)
	for eventID, users := range m.attending {
		for _, u := range users {
			if u == userID {
				out = append(out, m.byID[eventID])
				break
			}
		}
	}
	return out, nil
}

func (m *mockEventRepository) SharedEventExists(_ context.Context, userA, userB string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sharedErr != nil {
		return false, m.sharedErr
	}
	for _, users := range m.attending {
		var hasA, hasB bool
		for _, u := range users {
			if u == userA {
				hasA = true
			}
			if u == userB {
				hasB = true
			}
		}
		if hasA && hasB {
			return true, nil
		}
	}
	return false, nil
}

type mockVenueRepository struct {
	mu      sync.Mutex
	byID    map[string]domain.Venue
	created []domain.Venue
}

func newMockVenueRepository(venues ...domain.Venue) *mockVenueRepository {
	m := &mockVenueRepository{byID: make(map[string]domain.Venue)}
	for _, v := range venues {
		m.byID[v.ID] = v
	}
	return m
}

func (m *mockVenueRepository) Create(_ context.Context, venue domain.Venue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[venue.ID] = venue
	m.created = append(m.created, venue)
	return nil
}

func (m *mockVenueRepository) GetByID(_ context.Context, id string) (*domain.Venue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if venue, ok := m.byID[id]; ok {
		copy := venue
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockVenueRepository) GetByIDs(_ context.Context, ids []string) ([]domain.Venue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Venue, 0, len(ids))
	for _, id := range ids {
		if venue, ok := m.byID[id]; ok {
			out = append(out, venue)
		}
	}
	return out, nil
}

type mockTagRepository struct {
	mu         sync.Mutex
	byID       map[string]domain.Tag
	byName     map[string]domain.Tag
	links      map[string][]string // tag id -> event ids
	searchOut  []domain.Event
	searchErr  error
	searchWith string
}

func newMockTagRepository() *mockTagRepository {
	return &mockTagRepository{
		byID:   make(map[string]domain.Tag),
		byName: make(map[string]domain.Tag),
		links:  make(map[string][]string),
	}
}

func (m *mockTagRepository) Create(_ context.Context, tag domain.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byName[tag.Name]; exists {
		return repository.ErrDuplicate
	}
	m.byID[tag.ID] = tag
	m.byName[tag.Name] = tag
	return nil
}

func (m *mockTagRepository) GetByID(_ context.Context, id string) (*domain.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tag, ok := m.byID[id]; ok {
		copy := tag
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockTagRepository) Associate(_ context.Context, tagID, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[tagID] = append(m.links[tagID], eventID)
	return nil
}

func (m *mockTagRepository) SearchEvents(_ context.Context, nameFragment string) ([]domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchWith = nameFragment
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchOut, nil
}

type mockGeoIndex struct {
	mu        sync.Mutex
	added     map[string][2]float64
	searchOut []string
	searchErr error
	addErr    error
}

func newMockGeoIndex() *mockGeoIndex {
	return &mockGeoIndex{added: make(map[string][2]float64)}
}

func (m *mockGeoIndex) AddVenue(_ context.Context, venueID string, latitude, longitude float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.addErr != nil {
		return m.addErr
	}
	m.added[venueID] = [2]float64{latitude, longitude}
	return nil
}

func (m *mockGeoIndex) SearchVenueIDs(_ context.Context, _, _, _ float64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchOut, nil
}

type mockMessageRepository struct {
	mu       sync.Mutex
	messages []domain.Message

	createErr error
}

func (m *mockMessageRepository) Create(_ context.Context, message domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockMessageRepository) ListInbox(_ context.Context, recipientID string) ([]domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Message, 0)
	for _, msg := range m.messages {
		if msg.RecipientID == recipientID {
			out = append(out, msg)
		}
	}
	return out, nil
}

type mockPublisher struct {
	mu         sync.Mutex
	registered []domain.UserRegisteredEvent
	otpEnabled []domain.OTPEnabledEvent
	created    []domain.EventCreatedEvent

	err error
}

func (m *mockPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.registered = append(m.registered, event)
	return nil
}

func (m *mockPublisher) PublishOTPEnabled(_ context.Context, event domain.OTPEnabledEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.otpEnabled = append(m.otpEnabled, event)
	return nil
}

func (m *mockPublisher) PublishEventCreated(_ context.Context, event domain.EventCreatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, event)
	return nil
}
