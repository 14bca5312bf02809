package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/GregMSThompson/realestate-assistant/internal/dto"
	"github.com/GregMSThompson/realestate-assistant/internal/errs"
	"github.com/GregMSThompson/realestate-assistant/internal/middleware"
	"github.com/GregMSThompson/realestate-assistant/pkg/logger"
)

type stubPresenter struct {
	called bool
	req    dto.RenderRequest
	page   dto.Page
}

func (s *stubPresenter) Render(ctx context.Context, req dto.RenderRequest) dto.Page {
	s.called = true
	s.req = req
	return s.page
}

func (s *stubPresenter) DefaultPrompt() string { return "default prompt" }

type stubGeneration struct {
	called bool
	prompt string
	out    dto.GenerationOutcome
}

func (s *stubGeneration) Generate(ctx context.Context, prompt string) dto.GenerationOutcome {
	s.called = true
	s.prompt = prompt
	out := s.out
	out.Prompt = prompt
	return out
}

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusBadRequest)
}

func withTestContext(req *http.Request) *http.Request {
	log := slog.New(logger.NewTestHandler(slog.LevelInfo))
	ctx := logger.ToContext(req.Context(), log)
	ctx = context.WithValue(ctx, middleware.SessionIDKey, "session-1")
	return req.WithContext(ctx)
}

func TestPageShowDoesNotGenerate(t *testing.T) {
	presenter := &stubPresenter{page: dto.Page{Properties: dto.PropertySection{Header: "No properties found."}}}
	h := NewPageHandlers(&Deps{PresenterSvc: presenter})

	req := withTestContext(httptest.NewRequest(http.MethodGet, "/?location=Paris&prompt=hi", nil))
	rr := httptest.NewRecorder()
	h.Show(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if presenter.req.Location != "Paris" || presenter.req.Prompt == nil || *presenter.req.Prompt != "hi" || presenter.req.Generate {
		t.Fatalf("unexpected request: %+v", presenter.req)
	}
	if presenter.req.SessionID != "session-1" {
		t.Fatalf("SessionID = %q", presenter.req.SessionID)
	}
	if !strings.Contains(rr.Body.String(), "No properties found.") {
		t.Fatalf("page body missing property header")
	}
	if !strings.HasPrefix(rr.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("Content-Type = %q", rr.Header().Get("Content-Type"))
	}
}

func TestPageSubmitGenerateAction(t *testing.T) {
	presenter := &stubPresenter{}
	h := NewPageHandlers(&Deps{PresenterSvc: presenter})

	form := url.Values{"location": {"Paris"}, "prompt": {"Where?"}, "action": {"generate"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.Submit(rr, withTestContext(req))

	if !presenter.req.Generate || presenter.req.Prompt == nil || *presenter.req.Prompt != "Where?" {
		t.Fatalf("unexpected request: %+v", presenter.req)
	}
}

func TestPageShowPassesLocationVerbatim(t *testing.T) {
	for _, raw := range []string{"%20%20", "%20Paris%20"} {
		presenter := &stubPresenter{}
		h := NewPageHandlers(&Deps{PresenterSvc: presenter})

		req := withTestContext(httptest.NewRequest(http.MethodGet, "/?location="+raw, nil))
		h.Show(httptest.NewRecorder(), req)

		want, _ := url.QueryUnescape(raw)
		if presenter.req.Location != want {
			t.Fatalf("Location = %q, want %q", presenter.req.Location, want)
		}
	}
}

func TestPageShowWithoutPromptUsesDefault(t *testing.T) {
	presenter := &stubPresenter{}
	h := NewPageHandlers(&Deps{PresenterSvc: presenter})

	h.Show(httptest.NewRecorder(), withTestContext(httptest.NewRequest(http.MethodGet, "/", nil)))

	if presenter.req.Prompt != nil {
		t.Fatalf("absent prompt should stay nil, got %q", *presenter.req.Prompt)
	}
}

func TestPageSubmitClearedPromptIsKept(t *testing.T) {
	presenter := &stubPresenter{}
	h := NewPageHandlers(&Deps{PresenterSvc: presenter})

	form := url.Values{"location": {" Paris "}, "prompt": {""}, "action": {"generate"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.Submit(httptest.NewRecorder(), withTestContext(req))

	if presenter.req.Prompt == nil || *presenter.req.Prompt != "" {
		t.Fatalf("cleared prompt should be sent empty, got %v", presenter.req.Prompt)
	}
	if presenter.req.Location != " Paris " {
		t.Fatalf("Location = %q", presenter.req.Location)
	}
}

func TestPageSubmitWithoutActionDoesNotGenerate(t *testing.T) {
	presenter := &stubPresenter{}
	h := NewPageHandlers(&Deps{PresenterSvc: presenter})

	form := url.Values{"location": {"Paris"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.Submit(httptest.NewRecorder(), withTestContext(req))

	if presenter.req.Generate {
		t.Fatalf("generation should only run for the generate action")
	}
}

func TestAPIRenderSuccess(t *testing.T) {
	presenter := &stubPresenter{page: dto.Page{Location: "Paris"}}
	resp := &stubResponseHandler{}
	h := NewAPIHandlers(&Deps{ResponseHandler: resp, PresenterSvc: presenter})

	req := withTestContext(httptest.NewRequest(http.MethodGet, "/api/render?location=Paris", nil))
	h.Render(httptest.NewRecorder(), req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected WriteSuccess 200")
	}
	page, ok := resp.writeSuccessData.(dto.Page)
	if !ok || page.Location != "Paris" {
		t.Fatalf("unexpected data: %#v", resp.writeSuccessData)
	}
	if presenter.req.Generate {
		t.Fatalf("render endpoint must not generate")
	}
}

func TestAPIGenerateFailureIsStillOK(t *testing.T) {
	gen := &stubGeneration{out: dto.GenerationOutcome{Error: "quota exceeded"}}
	resp := &stubResponseHandler{}
	h := NewAPIHandlers(&Deps{ResponseHandler: resp, PresenterSvc: &stubPresenter{}, GenerationSvc: gen})

	req := withTestContext(httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt":"hello"}`)))
	h.Generate(httptest.NewRecorder(), req)

	if gen.prompt != "hello" {
		t.Fatalf("prompt = %q", gen.prompt)
	}
	if resp.handleErrorCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("generation failure should be a 200 with an error field")
	}
	out := resp.writeSuccessData.(dto.GenerationOutcome)
	if out.Error != "quota exceeded" {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestAPIGenerateUsesDefaultPrompt(t *testing.T) {
	gen := &stubGeneration{}
	h := NewAPIHandlers(&Deps{ResponseHandler: &stubResponseHandler{}, PresenterSvc: &stubPresenter{}, GenerationSvc: gen})

	req := withTestContext(httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{}`)))
	h.Generate(httptest.NewRecorder(), req)

	if gen.prompt != "default prompt" {
		t.Fatalf("prompt = %q", gen.prompt)
	}
}

func TestAPIGenerateEmptyPromptIsSentAsIs(t *testing.T) {
	gen := &stubGeneration{}
	h := NewAPIHandlers(&Deps{ResponseHandler: &stubResponseHandler{}, PresenterSvc: &stubPresenter{}, GenerationSvc: gen})

	req := withTestContext(httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt":""}`)))
	h.Generate(httptest.NewRecorder(), req)

	if !gen.called || gen.prompt != "" {
		t.Fatalf("prompt = %q, want empty", gen.prompt)
	}
}

func TestAPIGenerateInvalidJSON(t *testing.T) {
	gen := &stubGeneration{}
	resp := &stubResponseHandler{}
	h := NewAPIHandlers(&Deps{ResponseHandler: resp, PresenterSvc: &stubPresenter{}, GenerationSvc: gen})

	req := withTestContext(httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{`)))
	h.Generate(httptest.NewRecorder(), req)

	var verr *errs.ValidationError
	if !resp.handleErrorCalled || !errors.As(resp.handleError, &verr) {
		t.Fatalf("expected HandleError with a validation error, got %v", resp.handleError)
	}
	if gen.called {
		t.Fatalf("generation should not run for a bad body")
	}
}
