package services

import (
	"context"
	"errors"
	"testing"

	"github.com/GregMSThompson/realestate-assistant/internal/dto"
	"github.com/GregMSThompson/realestate-assistant/pkg/helpers"
)

type fakeVertexClient struct {
	requests []dto.VertexGenerateRequest
	resp     dto.VertexGenerateResponse
	err      error
	panicVal any
}

func (f *fakeVertexClient) GenerateContent(ctx context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error) {
	f.requests = append(f.requests, req)
	if f.panicVal != nil {
		panic(f.panicVal)
	}
	return f.resp, f.err
}

func TestGenerateSuccess(t *testing.T) {
	vertex := &fakeVertexClient{resp: dto.VertexGenerateResponse{Text: "Invest in suburban markets."}}
	svc := NewGenerationService(vertex)

	out := svc.Generate(helpers.TestCtx(), "Where should I invest?")

	if out.Failed() || out.Text != "Invest in suburban markets." {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if len(vertex.requests) != 1 || vertex.requests[0].UserMessage != "Where should I invest?" {
		t.Fatalf("unexpected requests: %+v", vertex.requests)
	}
}

func TestGenerateSampling(t *testing.T) {
	vertex := &fakeVertexClient{resp: dto.VertexGenerateResponse{Text: "ok"}}
	svc := NewGenerationService(vertex, WithSampling(helpers.Ptr(float32(0.2)), helpers.Ptr(int32(256))))

	svc.Generate(helpers.TestCtx(), "hi")

	req := vertex.requests[0]
	if req.Temperature == nil || *req.Temperature != 0.2 || req.MaxOutputTokens == nil || *req.MaxOutputTokens != 256 {
		t.Fatalf("sampling not forwarded: %+v", req)
	}
}

func TestGenerateDefaultSampling(t *testing.T) {
	vertex := &fakeVertexClient{resp: dto.VertexGenerateResponse{Text: "ok"}}
	NewGenerationService(vertex).Generate(helpers.TestCtx(), "hi")

	if vertex.requests[0].Temperature != nil || vertex.requests[0].MaxOutputTokens != nil {
		t.Fatalf("expected model defaults")
	}
}

func TestGenerateBackendError(t *testing.T) {
	svc := NewGenerationService(&fakeVertexClient{err: errors.New("rpc error: code = PermissionDenied")})

	out := svc.Generate(helpers.TestCtx(), "hi")

	if !out.Failed() || out.Error != "rpc error: code = PermissionDenied" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if out.Text != "" {
		t.Fatalf("text should be empty on failure")
	}
}

func TestGenerateBackendErrorWithoutMessage(t *testing.T) {
	svc := NewGenerationService(&fakeVertexClient{err: errors.New("")})

	out := svc.Generate(helpers.TestCtx(), "hi")

	if !out.Failed() || out.Text != "" {
		t.Fatalf("expected a failed outcome, got %+v", out)
	}
	if out.Error != "text generation failed (*errors.errorString)" {
		t.Fatalf("Error = %q", out.Error)
	}
	page := dto.Page{Generation: &out}
	for _, line := range page.Lines() {
		if line == dto.AIResponseHeader {
			t.Fatalf("failed generation rendered as a response: %q", page.Lines())
		}
	}
}

func TestGenerateEmptyPanicValue(t *testing.T) {
	out := NewGenerationService(&fakeVertexClient{panicVal: ""}).Generate(helpers.TestCtx(), "hi")

	if !out.Failed() {
		t.Fatalf("expected a failed outcome, got %+v", out)
	}
}

func TestGenerateEmptyPrompt(t *testing.T) {
	vertex := &fakeVertexClient{}
	out := NewGenerationService(vertex).Generate(helpers.TestCtx(), "   ")

	if out.Error != "prompt is required" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if len(vertex.requests) != 0 {
		t.Fatalf("backend should not be called for an empty prompt")
	}
}

func TestGenerateNotConfigured(t *testing.T) {
	out := NewGenerationService(nil).Generate(helpers.TestCtx(), "hi")

	if !out.Failed() {
		t.Fatalf("expected failure without a backend")
	}
}

func TestGeneratePanicIsCaught(t *testing.T) {
	out := NewGenerationService(&fakeVertexClient{panicVal: "nil map"}).Generate(helpers.TestCtx(), "hi")

	if out.Error != "nil map" || out.Prompt != "hi" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}
