package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vigileye/vigil/internal/domain/model"
	"github.com/vigileye/vigil/internal/domain/service"
)

// ScoreRequest is the input DTO for stateless scoring.
type ScoreRequest struct {
	Text string `json:"text"`
}

// ScoreResponse serializes a ScoreResult.
type ScoreResponse struct {
	RiskLevel       string   `json:"risk_level"`
	FlaggedKeywords []string `json:"flagged_keywords"`
	Score           int      `json:"score"`
}

// FromScoreResult maps a scorer result to the response DTO.
func FromScoreResult(r service.ScoreResult) ScoreResponse {
	signals := r.Signals
	if signals == nil {
		signals = []string{}
	}
	return ScoreResponse{
		Score:           r.Score,
		FlaggedKeywords: signals,
		RiskLevel:       r.Tier.String(),
	}
}

// AnalyzeMessageRequest is the input DTO for the AnalyzeMessage use case.
type AnalyzeMessageRequest struct {
	Text      string `json:"text"`
	KindredID string `json:"kindredId"`
}

// AnalyzeMessageResponse is returned after a message has been analyzed.
type AnalyzeMessageResponse struct {
	AlertID         *uuid.UUID `json:"alert_id,omitempty"`
	RiskLevel       string     `json:"risk_level"`
	FlaggedKeywords []string   `json:"flagged_keywords"`
	Score           int        `json:"score"`
	MessageID       uuid.UUID  `json:"message_id"`
}

// MessageResponse is a stored message.
type MessageResponse struct {
	SentAt          time.Time `json:"timestamp"`
	KindredID       string    `json:"kindred_id"`
	Text            string    `json:"text"`
	RiskLevel       string    `json:"risk_level"`
	FlaggedKeywords []string  `json:"flagged_keywords"`
	Score           int       `json:"score"`
	ID              uuid.UUID `json:"id"`
}

// FromMessage maps a domain message to its DTO.
func FromMessage(m *model.Message) MessageResponse {
	return MessageResponse{
		ID:              m.ID(),
		KindredID:       m.KindredID(),
		Text:            m.Text(),
		Score:           m.Score(),
		RiskLevel:       m.RiskTier().String(),
		FlaggedKeywords: m.Signals(),
		SentAt:          m.SentAt(),
	}
}

// ListMessagesRequest pages through a device's messages.
type ListMessagesRequest struct {
	KindredID string `json:"kindredId"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
}

// ListMessagesResponse is a page of messages.
type ListMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// AlertResponse is a stored alert.
type AlertResponse struct {
	CreatedAt       time.Time  `json:"timestamp"`
	AcknowledgedAt  *time.Time `json:"acknowledged_at,omitempty"`
	KindredID       string     `json:"kindred_id"`
	Excerpt         string     `json:"message_excerpt"`
	RiskLevel       string     `json:"risk_level"`
	FlaggedKeywords []string   `json:"flagged_keywords"`
	Score           int        `json:"score"`
	Acknowledged    bool       `json:"acknowledged"`
	ID              uuid.UUID  `json:"id"`
	MessageID       uuid.UUID  `json:"message_id"`
}

// FromAlert maps a domain alert to its DTO.
func FromAlert(a *model.Alert) AlertResponse {
	resp := AlertResponse{
		ID:              a.ID(),
		MessageID:       a.MessageID(),
		KindredID:       a.KindredID(),
		Excerpt:         a.Excerpt(),
		Score:           a.Score(),
		RiskLevel:       a.RiskTier().String(),
		FlaggedKeywords: a.Signals(),
		Acknowledged:    a.IsAcknowledged(),
		CreatedAt:       a.CreatedAt(),
	}
	if a.IsAcknowledged() {
		at := a.AcknowledgedAt()
		resp.AcknowledgedAt = &at
	}
	return resp
}

// ListAlertsRequest filters alerts by tier ("all" or empty for every tier)
// and selects a 1-based page.
type ListAlertsRequest struct {
	Risk     string `json:"risk"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// ListAlertsResponse is a page of alerts.
type ListAlertsResponse struct {
	Risk       string          `json:"risk"`
	Alerts     []AlertResponse `json:"alerts"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
}

// AcknowledgeAlertRequest identifies the alert to acknowledge.
type AcknowledgeAlertRequest struct {
	AlertID uuid.UUID `json:"alert_id"`
}

// DeviceRequest identifies a device.
type DeviceRequest struct {
	KindredID string `json:"kindredId"`
}

// DeviceResponse is the state of a device.
type DeviceResponse struct {
	LastHeartbeat           time.Time `json:"last_heartbeat"`
	CreatedAt               time.Time `json:"created_at"`
	KindredID               string    `json:"kindred_id"`
	OwnerParentID           string    `json:"owner_parent_id"`
	LocationTrackingEnabled bool      `json:"location_tracking_enabled"`
}

// FromDevice maps a domain device to its DTO.
func FromDevice(d *model.Device) DeviceResponse {
	return DeviceResponse{
		KindredID:               d.KindredID(),
		OwnerParentID:           d.OwnerParentID(),
		LastHeartbeat:           d.LastHeartbeat(),
		LocationTrackingEnabled: d.LocationTrackingEnabled(),
		CreatedAt:               d.CreatedAt(),
	}
}

// RecordLocationRequest is a position report. Coordinates accept JSON numbers
// or decimal strings.
type RecordLocationRequest struct {
	Accuracy  *decimal.Decimal `json:"accuracy,omitempty"`
	KindredID string           `json:"kindredId"`
	Latitude  decimal.Decimal  `json:"latitude"`
	Longitude decimal.Decimal  `json:"longitude"`
}

// LocationResponse is a stored position.
type LocationResponse struct {
	RecordedAt time.Time `json:"timestamp"`
	Accuracy   *string   `json:"accuracy,omitempty"`
	KindredID  string    `json:"kindred_id"`
	Latitude   string    `json:"latitude"`
	Longitude  string    `json:"longitude"`
	MapsURL    string    `json:"maps_url"`
	ID         uuid.UUID `json:"id"`
}

// FromLocation maps a domain location to its DTO.
func FromLocation(l *model.Location) LocationResponse {
	resp := LocationResponse{
		ID:         l.ID(),
		KindredID:  l.KindredID(),
		Latitude:   l.Coordinates().Latitude().String(),
		Longitude:  l.Coordinates().Longitude().String(),
		MapsURL:    l.MapsURL(),
		RecordedAt: l.RecordedAt(),
	}
	if acc := l.Accuracy(); acc.Valid {
		s := acc.Decimal.String()
		resp.Accuracy = &s
	}
	return resp
}
