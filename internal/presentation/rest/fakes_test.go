package rest_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vigileye/vigil/internal/domain/model"
	"github.com/vigileye/vigil/internal/domain/port"
	"github.com/vigileye/vigil/pkg/events"
)

type memDevices struct {
	mu      sync.Mutex
	devices map[string]*model.Device
}

func (m *memDevices) GetOrCreate(_ context.Context, kindredID, owner string) (*model.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.devices[kindredID]; ok {
		return d, nil
	}
	d, err := model.NewDevice(kindredID, owner)
	if err != nil {
		return nil, err
	}
	m.devices[kindredID] = d
	return d, nil
}

func (m *memDevices) FindByKindredID(_ context.Context, kindredID string) (*model.Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.devices[kindredID]
	if !ok {
		return nil, port.ErrDeviceNotFound
	}
	return d, nil
}

func (m *memDevices) Save(_ context.Context, d *model.Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.devices[d.KindredID()]; !ok {
		return port.ErrDeviceNotFound
	}
	m.devices[d.KindredID()] = d
	return nil
}

func (m *memDevices) Delete(_ context.Context, kindredID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.devices[kindredID]; !ok {
		return port.ErrDeviceNotFound
	}
	delete(m.devices, kindredID)
	return nil
}

type memMessages struct {
	alerts *memAlerts
	msgs   []*model.Message
	mu     sync.Mutex
}

func (m *memMessages) Save(ctx context.Context, msg *model.Message) error {
	return m.SaveWithAlert(ctx, msg, nil)
}

func (m *memMessages) SaveWithAlert(ctx context.Context, msg *model.Message, alert *model.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if alert != nil {
		if err := m.alerts.Save(ctx, alert); err != nil {
			return err
		}
	}
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *memMessages) ListByDevice(_ context.Context, kindredID string, limit, offset int) ([]*model.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Message
	for i := len(m.msgs) - 1; i >= 0; i-- {
		if m.msgs[i].KindredID() == kindredID {
			out = append(out, m.msgs[i])
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

type memAlerts struct {
	mu     sync.Mutex
	order  []uuid.UUID
	alerts map[uuid.UUID]*model.Alert
}

func (m *memAlerts) Save(_ context.Context, a *model.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.alerts[a.ID()]; !ok {
		m.order = append(m.order, a.ID())
	}
	m.alerts[a.ID()] = a
	return nil
}

func (m *memAlerts) FindByID(_ context.Context, id uuid.UUID) (*model.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.alerts[id]
	if !ok {
		return nil, port.ErrAlertNotFound
	}
	return a, nil
}

func (m *memAlerts) List(_ context.Context, f port.AlertFilter) ([]*model.Alert, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []*model.Alert
	for i := len(m.order) - 1; i >= 0; i-- {
		a := m.alerts[m.order[i]]
		if f.Matches(a.RiskTier()) {
			matched = append(matched, a)
		}
	}
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

type memLocations struct {
	mu   sync.Mutex
	locs []*model.Location
}

func (m *memLocations) Save(_ context.Context, loc *model.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locs = append(m.locs, loc)
	return nil
}

func (m *memLocations) Latest(_ context.Context, kindredID string) (*model.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.locs) - 1; i >= 0; i-- {
		if m.locs[i].KindredID() == kindredID {
			return m.locs[i], nil
		}
	}
	return nil, port.ErrLocationNotFound
}

type memPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (m *memPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evts...)
	return nil
}

func (m *memPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.EventType())
	}
	return out
}
