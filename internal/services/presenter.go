package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/realestate-assistant/internal/dto"
	"github.com/GregMSThompson/realestate-assistant/internal/errs"
	"github.com/GregMSThompson/realestate-assistant/internal/metrics"
	"github.com/GregMSThompson/realestate-assistant/internal/models"
	"github.com/GregMSThompson/realestate-assistant/pkg/helpers"
	"github.com/GregMSThompson/realestate-assistant/pkg/logger"
)

const (
	WeatherFallback    = "Could not fetch weather data for the location."
	AirQualityFallback = "Could not fetch AQI data for the location."
	NoPropertiesFound  = "No properties found."
)

type weatherClient interface {
	Current(ctx context.Context, location string) (*dto.WeatherResult, error)
}

type airQualityClient interface {
	Index(ctx context.Context, location string) (*dto.AirQualityResult, error)
}

type listingsClient interface {
	List(ctx context.Context) ([]dto.PropertyRecord, error)
}

type generator interface {
	Generate(ctx context.Context, prompt string) dto.GenerationOutcome
}

type sessionStore interface {
	SaveSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
}

type presenterService struct {
	weather       weatherClient
	airQuality    airQualityClient
	listings      listingsClient
	generator     generator
	sessions      sessionStore
	sessionTTL    time.Duration
	defaultPrompt string
	clockNow      func() time.Time
}

type PresenterOption func(*presenterService)

// WithSessionStore keeps the last generation outcome per session so later
// render cycles show it again. Without it each cycle starts clean.
func WithSessionStore(store sessionStore, ttl time.Duration) PresenterOption {
	return func(s *presenterService) {
		s.sessions = store
		s.sessionTTL = ttl
	}
}

func NewPresenterService(weather weatherClient, airQuality airQualityClient, listings listingsClient, gen generator, defaultPrompt string, opts ...PresenterOption) *presenterService {
	s := &presenterService{
		weather:       weather,
		airQuality:    airQuality,
		listings:      listings,
		generator:     gen,
		defaultPrompt: defaultPrompt,
		clockNow:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *presenterService) DefaultPrompt() string { return s.defaultPrompt }

// Render runs one render cycle. Weather and AQI are looked up only for a
// non-empty location, the property feed always, and text generation only when
// req.Generate is set. Every lookup fails on its own: a failure changes only
// its own section of the page.
func (s *presenterService) Render(ctx context.Context, req dto.RenderRequest) dto.Page {
	log := logger.FromContext(ctx)
	metrics.RenderCycles.Inc()

	page := dto.Page{
		Location: req.Location,
		Prompt:   helpers.ValueOr(req.Prompt, s.defaultPrompt),
	}

	var (
		weather    *dto.WeatherResult
		airQuality *dto.AirQualityResult
		properties []dto.PropertyRecord
		g          errgroup.Group
	)

	if req.Location != "" {
		g.Go(func() error {
			var err error
			weather, err = s.weather.Current(ctx, req.Location)
			if err != nil {
				log.Warn("weather lookup failed", "location", req.Location, "error", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			airQuality, err = s.airQuality.Index(ctx, req.Location)
			if err != nil {
				log.Warn("aqi lookup failed", "location", req.Location, "error", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		properties, err = s.listings.List(ctx)
		if err != nil {
			log.Warn("property feed lookup failed", "error", err)
		}
		return nil
	})
	_ = g.Wait()

	if req.Location != "" {
		page.Weather = weatherLine(req.Location, weather)
		page.AirQuality = airQualityLine(req.Location, airQuality)
	}
	page.Properties = propertySection(properties)

	switch {
	case req.Generate:
		outcome := s.generator.Generate(ctx, page.Prompt)
		page.Generation = &outcome
		s.saveOutcome(ctx, req.SessionID, outcome)
	default:
		page.Generation = s.restoreOutcome(ctx, req.SessionID)
	}

	log.Debug("render cycle completed",
		"location", req.Location,
		"weather_ok", page.Weather != nil && page.Weather.OK,
		"aqi_ok", page.AirQuality != nil && page.AirQuality.OK,
		"properties", page.Properties.Count,
		"generated", req.Generate)
	return page
}

func weatherLine(location string, res *dto.WeatherResult) *dto.StatusLine {
	if res == nil {
		return &dto.StatusLine{Message: WeatherFallback}
	}
	return &dto.StatusLine{
		OK:      true,
		Message: fmt.Sprintf("Weather in %s: %s, Temperature: %s°C", location, res.Description, formatNumber(res.Temperature)),
	}
}

func airQualityLine(location string, res *dto.AirQualityResult) *dto.StatusLine {
	if res == nil {
		return &dto.StatusLine{Message: AirQualityFallback}
	}
	return &dto.StatusLine{
		OK:      true,
		Message: fmt.Sprintf("AQI (Air Quality Index) in %s: %s", location, formatNumber(res.Index)),
	}
}

func propertySection(records []dto.PropertyRecord) dto.PropertySection {
	if len(records) == 0 {
		return dto.PropertySection{Header: NoPropertiesFound, Records: []dto.PropertyRecord{}}
	}
	return dto.PropertySection{
		Count:   len(records),
		Header:  fmt.Sprintf("Found %d properties matching your criteria:", len(records)),
		Records: records,
	}
}

// formatNumber prints the shortest form: 18, 18.5, -3.25.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (s *presenterService) saveOutcome(ctx context.Context, sessionID string, outcome dto.GenerationOutcome) {
	if s.sessions == nil || sessionID == "" {
		return
	}

	now := s.clockNow()
	session := models.Session{
		SessionID: sessionID,
		Prompt:    outcome.Prompt,
		Text:      outcome.Text,
		Error:     outcome.Error,
		CreatedAt: now,
	}
	if s.sessionTTL > 0 {
		session.ExpiresAt = now.Add(s.sessionTTL)
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		logger.FromContext(ctx).Error("failed to save session", "error", err)
	}
}

func (s *presenterService) restoreOutcome(ctx context.Context, sessionID string) *dto.GenerationOutcome {
	if s.sessions == nil || sessionID == "" {
		return nil
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		var nf *errs.NotFoundError
		if !errors.As(err, &nf) {
			logger.FromContext(ctx).Error("failed to load session", "error", err)
		}
		return nil
	}
	return &dto.GenerationOutcome{
		Prompt: session.Prompt,
		Text:   session.Text,
		Error:  session.Error,
	}
}
