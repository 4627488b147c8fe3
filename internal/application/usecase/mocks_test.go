package usecase_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vigileye/vigil/internal/domain/model"
	"github.com/vigileye/vigil/internal/domain/port"
	"github.com/vigileye/vigil/internal/domain/valueobject"
	"github.com/vigileye/vigil/pkg/events"
)

var errStore = errors.New("store unavailable")

// --- Mock implementations ---

type mockDeviceRepository struct {
	devices   map[string]*model.Device
	saveErr   error
	getErr    error
	created   []string
	deleted   []string
	saveCalls int
}

func newMockDeviceRepository(ids ...string) *mockDeviceRepository {
	m := &mockDeviceRepository{devices: map[string]*model.Device{}}
	for _, id := range ids {
		d, _ := model.NewDevice(id, "parent-1")
		m.devices[id] = d
	}
	return m
}

func (m *mockDeviceRepository) GetOrCreate(_ context.Context, kindredID, owner string) (*model.Device, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if d, ok := m.devices[kindredID]; ok {
		return d, nil
	}
	d, err := model.NewDevice(kindredID, owner)
	if err != nil {
		return nil, err
	}
	m.devices[kindredID] = d
	m.created = append(m.created, kindredID)
	return d, nil
}

func (m *mockDeviceRepository) FindByKindredID(_ context.Context, kindredID string) (*model.Device, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	d, ok := m.devices[kindredID]
	if !ok {
		return nil, port.ErrDeviceNotFound
	}
	return d, nil
}

func (m *mockDeviceRepository) Save(_ context.Context, d *model.Device) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.devices[d.KindredID()] = d
	return nil
}

func (m *mockDeviceRepository) Delete(_ context.Context, kindredID string) error {
	if _, ok := m.devices[kindredID]; !ok {
		return port.ErrDeviceNotFound
	}
	delete(m.devices, kindredID)
	m.deleted = append(m.deleted, kindredID)
	return nil
}

// mockMessageRepository stores the alert of SaveWithAlert in alerts, and
// keeps neither record when either write fails.
type mockMessageRepository struct {
	alerts  *mockAlertRepository
	saveErr error
	saved   []*model.Message
}

func (m *mockMessageRepository) Save(ctx context.Context, msg *model.Message) error {
	return m.SaveWithAlert(ctx, msg, nil)
}

func (m *mockMessageRepository) SaveWithAlert(ctx context.Context, msg *model.Message, alert *model.Alert) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if alert != nil {
		if err := m.alerts.Save(ctx, alert); err != nil {
			return err
		}
	}
	m.saved = append(m.saved, msg)
	return nil
}

func (m *mockMessageRepository) ListByDevice(_ context.Context, kindredID string, limit, offset int) ([]*model.Message, error) {
	var out []*model.Message
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].KindredID() == kindredID {
			out = append(out, m.saved[i])
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type mockAlertRepository struct {
	byID       map[uuid.UUID]*model.Alert
	saveErr    error
	order      []uuid.UUID
	lastFilter port.AlertFilter
}

func newMockAlertRepository() *mockAlertRepository {
	return &mockAlertRepository{byID: map[uuid.UUID]*model.Alert{}}
}

func (m *mockAlertRepository) Save(_ context.Context, a *model.Alert) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.byID[a.ID()]; !ok {
		m.order = append(m.order, a.ID())
	}
	m.byID[a.ID()] = a
	return nil
}

func (m *mockAlertRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Alert, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, port.ErrAlertNotFound
	}
	return a, nil
}

func (m *mockAlertRepository) List(_ context.Context, f port.AlertFilter) ([]*model.Alert, int, error) {
	m.lastFilter = f
	var matched []*model.Alert
	for _, id := range m.order {
		a := m.byID[id]
		if f.Matches(a.RiskTier()) {
			matched = append(matched, a)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt().After(matched[j].CreatedAt()) })
	total := len(matched)
	if f.Offset >= total {
		return nil, total, nil
	}
	matched = matched[f.Offset:]
	if len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

type mockLocationRepository struct {
	saveErr error
	saved   []*model.Location
}

func (m *mockLocationRepository) Save(_ context.Context, loc *model.Location) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, loc)
	return nil
}

func (m *mockLocationRepository) Latest(_ context.Context, kindredID string) (*model.Location, error) {
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].KindredID() == kindredID {
			return m.saved[i], nil
		}
	}
	return nil, port.ErrLocationNotFound
}

type mockEventPublisher struct {
	publishErr error
	published  []events.DomainEvent
}

func (m *mockEventPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, evts...)
	return nil
}

func (m *mockEventPublisher) types() []string {
	out := make([]string, 0, len(m.published))
	for _, e := range m.published {
		out = append(out, e.EventType())
	}
	return out
}

type mockNotifier struct {
	err  error
	sent []port.Notification
}

func (m *mockNotifier) Notify(_ context.Context, n port.Notification) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, n)
	return nil
}

type mockMetrics struct {
	mu     sync.Mutex
	scores []int
	alerts []valueobject.RiskTier
}

func (m *mockMetrics) RecordScore(_ context.Context, score int, _ valueobject.RiskTier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, score)
}

func (m *mockMetrics) RecordAlert(_ context.Context, tier valueobject.RiskTier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = append(m.alerts, tier)
}
