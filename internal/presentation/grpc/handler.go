package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vigileye/vigil/internal/application/dto"
	"github.com/vigileye/vigil/internal/application/usecase"
	"github.com/vigileye/vigil/internal/domain/port"
	"github.com/vigileye/vigil/pkg/auth"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	if !claims.HasAnyRole(roles...) {
		return status.Error(codes.PermissionDenied, "insufficient permissions")
	}
	return nil
}

// Compile-time assertion that RiskServiceHandler implements RiskServiceServer.
var _ RiskServiceServer = (*RiskServiceHandler)(nil)

// RiskServiceHandler implements the gRPC RiskServiceServer interface.
type RiskServiceHandler struct {
	UnimplementedRiskServiceServer
	scoreText      *usecase.ScoreText
	analyzeMessage *usecase.AnalyzeMessage
	logger         *slog.Logger
	checkRoles     bool
}

// NewRiskServiceHandler creates a new gRPC handler. With checkRoles set,
// AnalyzeMessage is restricted to device and admin tokens.
func NewRiskServiceHandler(
	scoreText *usecase.ScoreText,
	analyzeMessage *usecase.AnalyzeMessage,
	logger *slog.Logger,
	checkRoles bool,
) *RiskServiceHandler {
	return &RiskServiceHandler{
		scoreText:      scoreText,
		analyzeMessage: analyzeMessage,
		logger:         logger,
		checkRoles:     checkRoles,
	}
}

// ScoreText scores text without storing it.
func (h *RiskServiceHandler) ScoreText(ctx context.Context, req *ScoreTextRequest) (*ScoreTextResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result := h.scoreText.Execute(ctx, dto.ScoreRequest{Text: req.Text})

	return &ScoreTextResponse{
		Score:           int32(result.Score),
		RiskLevel:       result.RiskLevel,
		FlaggedKeywords: result.FlaggedKeywords,
	}, nil
}

// AnalyzeMessage scores and stores a device message.
func (h *RiskServiceHandler) AnalyzeMessage(ctx context.Context, req *AnalyzeMessageRequest) (*AnalyzeMessageResponse, error) {
	if h.checkRoles {
		if err := requireRole(ctx, auth.RoleDevice, auth.RoleAdmin); err != nil {
			return nil, err
		}
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.analyzeMessage.Execute(ctx, dto.AnalyzeMessageRequest{
		KindredID: req.KindredID,
		Text:      req.Text,
	})
	if err != nil {
		return nil, h.toStatus(err, "analyze message")
	}

	resp := &AnalyzeMessageResponse{
		MessageID:       result.MessageID.String(),
		Score:           int32(result.Score),
		RiskLevel:       result.RiskLevel,
		FlaggedKeywords: result.FlaggedKeywords,
	}
	if result.AlertID != nil {
		resp.AlertID = result.AlertID.String()
	}
	return resp, nil
}

func (h *RiskServiceHandler) toStatus(err error, op string) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrDeviceNotFound):
		return status.Error(codes.NotFound, "device not found")
	default:
		h.logger.Error("rpc failed", "op", op, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
