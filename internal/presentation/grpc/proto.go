package grpc

// proto.go holds the service description for vigil.risk.v1.RiskService.
// Messages are plain structs carried by the JSON codec in codec.go, so no
// generated stubs are needed.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	riskServiceName          = "vigil.risk.v1.RiskService"
	scoreTextFullMethod      = "/" + riskServiceName + "/ScoreText"
	analyzeMessageFullMethod = "/" + riskServiceName + "/AnalyzeMessage"
)

// RiskServiceServer is the server API for RiskService.
type RiskServiceServer interface {
	ScoreText(context.Context, *ScoreTextRequest) (*ScoreTextResponse, error)
	AnalyzeMessage(context.Context, *AnalyzeMessageRequest) (*AnalyzeMessageResponse, error)
	mustEmbedUnimplementedRiskServiceServer()
}

// UnimplementedRiskServiceServer provides forward-compatible default implementations.
type UnimplementedRiskServiceServer struct{}

func (UnimplementedRiskServiceServer) ScoreText(context.Context, *ScoreTextRequest) (*ScoreTextResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreText not implemented")
}
func (UnimplementedRiskServiceServer) AnalyzeMessage(context.Context, *AnalyzeMessageRequest) (*AnalyzeMessageResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AnalyzeMessage not implemented")
}
func (UnimplementedRiskServiceServer) mustEmbedUnimplementedRiskServiceServer() {}

// RegisterRiskServiceServer registers the RiskServiceServer with the gRPC server.
func RegisterRiskServiceServer(s grpclib.ServiceRegistrar, srv RiskServiceServer) {
	s.RegisterService(&riskServiceDesc, srv)
}

var riskServiceDesc = grpclib.ServiceDesc{
	ServiceName: riskServiceName,
	HandlerType: (*RiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ScoreText", Handler: scoreTextHandler},
		{MethodName: "AnalyzeMessage", Handler: analyzeMessageHandler},
	},
	Streams: []grpclib.StreamDesc{},
}

func scoreTextHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ScoreTextRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RiskServiceServer).ScoreText(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: scoreTextFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RiskServiceServer).ScoreText(ctx, req.(*ScoreTextRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func analyzeMessageHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(AnalyzeMessageRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RiskServiceServer).AnalyzeMessage(ctx, req)
	}
	info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: analyzeMessageFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RiskServiceServer).AnalyzeMessage(ctx, req.(*AnalyzeMessageRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// ScoreTextRequest carries text to score without persisting it.
type ScoreTextRequest struct {
	Text string `json:"text"`
}

// ScoreTextResponse is the scoring result.
type ScoreTextResponse struct {
	RiskLevel       string   `json:"risk_level"`
	FlaggedKeywords []string `json:"flagged_keywords"`
	Score           int32    `json:"score"`
}

// AnalyzeMessageRequest carries a message reported by a device.
type AnalyzeMessageRequest struct {
	KindredID string `json:"kindred_id"`
	Text      string `json:"text"`
}

// AnalyzeMessageResponse is the stored analysis of a message.
type AnalyzeMessageResponse struct {
	MessageID       string   `json:"message_id"`
	AlertID         string   `json:"alert_id,omitempty"`
	RiskLevel       string   `json:"risk_level"`
	FlaggedKeywords []string `json:"flagged_keywords"`
	Score           int32    `json:"score"`
}
