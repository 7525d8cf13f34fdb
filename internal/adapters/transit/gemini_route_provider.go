package transit

import (
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/platform/obs"
	"commute-tco-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// contentGenerator is the part of *genai.Models the provider uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

type geminiRoute struct {
	Status  string   `json:"status"`
	Minutes int      `json:"minutes"`
	FareYen *float64 `json:"fare_yen"`
	Line    string   `json:"line"`
	Reason  string   `json:"reason"`
}

// GeminiRouteProvider implements RouteProvider by asking a Gemini model for
// a public transit itinerary. The model must answer with a JSON object
// matching routeSchema; anything else is a hard error.
type GeminiRouteProvider struct {
	models     contentGenerator
	model      string
	loc        *time.Location
	attempts   uint
	retryDelay time.Duration
	timeout    time.Duration
	logger     *zap.Logger
}

type GeminiOption func(*GeminiRouteProvider)

func WithModel(m string) GeminiOption {
	return func(p *GeminiRouteProvider) {
		if m != "" {
			p.model = strings.TrimPrefix(m, "models/")
		}
	}
}

// WithLocation sets the time zone query times are expressed in.
func WithLocation(loc *time.Location) GeminiOption {
	return func(p *GeminiRouteProvider) {
		if loc != nil {
			p.loc = loc
		}
	}
}

func WithGeminiRetry(attempts uint, delay time.Duration) GeminiOption {
	return func(p *GeminiRouteProvider) {
		if attempts > 0 {
			p.attempts = attempts
		}
		p.retryDelay = delay
	}
}

// WithRequestTimeout bounds each Query, retries included. Zero disables it.
func WithRequestTimeout(d time.Duration) GeminiOption {
	return func(p *GeminiRouteProvider) { p.timeout = d }
}

func WithGeminiLogger(l *zap.Logger) GeminiOption {
	return func(p *GeminiRouteProvider) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewGeminiRouteProvider creates a Gemini API client for apiKey.
func NewGeminiRouteProvider(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGeminiRouteProvider(client.Models, opts...), nil
}

func newGeminiRouteProvider(models contentGenerator, opts ...GeminiOption) *GeminiRouteProvider {
	p := &GeminiRouteProvider{
		models:     models,
		model:      "gemini-2.5-flash",
		loc:        time.FixedZone("JST", 9*60*60),
		attempts:   3,
		retryDelay: 2 * time.Second,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func routeSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"status": {
				Type:        genai.TypeString,
				Enum:        []string{"ok", "no_route"},
				Description: "ok when a route exists at the requested time, otherwise no_route",
			},
			"minutes": {
				Type:        genai.TypeInteger,
				Description: "One-way door-to-door travel time in minutes",
			},
			"fare_yen": {
				Type:        genai.TypeNumber,
				Description: "One-way IC card fare in yen; omit when unknown",
			},
			"line": {
				Type:        genai.TypeString,
				Description: "Short summary of the lines used, e.g. JR Saikyo Line -> Toei Oedo Line",
			},
			"reason": {
				Type:        genai.TypeString,
				Description: "Why no route exists, when status is no_route",
			},
		},
		Required: []string{"status"},
	}
}

func (p *GeminiRouteProvider) prompt(q ports.RouteQuery) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan a public transit trip from %q to %q.\n", q.Origin.Label(), q.Destination.Label())

	at := q.At.In(p.loc).Format("2006-01-02 15:04 MST (Monday)")
	if q.Mode == domain.ArriveBy {
		fmt.Fprintf(&b, "The traveller must arrive by %s.\n", at)
	} else {
		fmt.Fprintf(&b, "The traveller departs at %s.\n", at)
	}

	if q.Strict {
		b.WriteString("Use only rail and subway lines, with as few transfers as possible.\n")
	} else {
		b.WriteString("Any public transit is acceptable, including buses.\n")
	}

	b.WriteString("Answer with status no_route if no such trip runs at that time. ")
	b.WriteString("Otherwise give the one-way travel time in minutes, the one-way IC fare in yen and a one-line summary.")

	return b.String()
}

// isTransient reports whether a GenerateContent error is worth retrying:
// rate limiting and server-side failures by API status code, and network
// timeouts.
func isTransient(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.Code)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return retryableStatus(apiErrPtr.Code)
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func (p *GeminiRouteProvider) Query(ctx context.Context, q ports.RouteQuery) ports.RouteOutcome {
	var err error
	defer obs.Time(ctx, "gemini.Query")(&err)

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	temperature := float32(0.1)
	cfg := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
		ResponseSchema:   routeSchema(),
	}
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: p.prompt(q)}}},
	}

	var resp *genai.GenerateContentResponse
	err = retry.Do(
		func() error {
			r, genErr := p.models.GenerateContent(ctx, p.model, contents, cfg)
			if genErr != nil {
				if isTransient(genErr) {
					return genErr
				}
				return retry.Unrecoverable(genErr)
			}
			resp = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(p.attempts),
		retry.Delay(p.retryDelay),
		retry.MaxDelay(10*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			p.logger.Debug("retrying gemini route query", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return ports.HardError(fmt.Sprintf("gemini request failed: %v", err))
	}

	var route geminiRoute
	route, err = decodeRoute(resp)
	if err != nil {
		return ports.HardError(err.Error())
	}

	switch route.Status {
	case "ok":
		if route.Minutes <= 0 {
			return ports.NoRoute("model returned ok without a travel time")
		}
		var fare *float64
		if route.FareYen != nil && *route.FareYen > 0 {
			fare = route.FareYen
		}
		return ports.Success(route.Minutes, fare, strings.TrimSpace(route.Line))
	case "no_route":
		return ports.NoRoute(route.Reason)
	default:
		err = fmt.Errorf("unexpected route status %q", route.Status)
		return ports.HardError(err.Error())
	}
}

func decodeRoute(resp *genai.GenerateContentResponse) (geminiRoute, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return geminiRoute{}, errors.New("empty response from Gemini API")
	}

	c := resp.Candidates[0]
	if c.Content == nil || len(c.Content.Parts) == 0 {
		return geminiRoute{}, errors.New("no content in Gemini response")
	}

	text := ""
	for _, part := range c.Content.Parts {
		if part != nil && part.Text != "" {
			text = part.Text
			break
		}
	}
	if text == "" {
		return geminiRoute{}, errors.New("no text in Gemini response")
	}

	var route geminiRoute
	if err := json.Unmarshal([]byte(text), &route); err != nil {
		return geminiRoute{}, fmt.Errorf("parse Gemini route response: %w", err)
	}

	return route, nil
}
