package transit

import (
	"commute-tco-service/internal/ports"
	"context"
	"sync"
)

type MockRoute struct {
	From, To string
	Minutes  int
	Fare     *float64
	Summary  string
}

// MockRouteProvider answers from a fixed table keyed by place ID. Unknown
// pairs are no_route. Scripted outcomes, when present for a pair, are
// returned one per call before falling back to the table. Every query is
// recorded.
type MockRouteProvider struct {
	mu     sync.Mutex
	m      map[string]ports.RouteOutcome
	script map[string][]ports.RouteOutcome
	calls  []ports.RouteQuery
}

func NewMockRouteProvider(routes []MockRoute) *MockRouteProvider {
	m := make(map[string]ports.RouteOutcome, len(routes))
	for _, r := range routes {
		m[r.From+"|"+r.To] = ports.Success(r.Minutes, r.Fare, r.Summary)
	}
	return &MockRouteProvider{m: m, script: map[string][]ports.RouteOutcome{}}
}

// Script queues outcomes for the pair, consumed in call order.
func (p *MockRouteProvider) Script(from, to string, outcomes ...ports.RouteOutcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := from + "|" + to
	p.script[key] = append(p.script[key], outcomes...)
}

func (p *MockRouteProvider) Query(ctx context.Context, q ports.RouteQuery) ports.RouteOutcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, q)

	key := q.Origin.ID + "|" + q.Destination.ID
	if queued := p.script[key]; len(queued) > 0 {
		p.script[key] = queued[1:]
		return queued[0]
	}

	if out, ok := p.m[key]; ok {
		return out
	}
	return ports.NoRoute("no mock route for " + key)
}

// Calls returns a copy of the recorded queries.
func (p *MockRouteProvider) Calls() []ports.RouteQuery {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]ports.RouteQuery, len(p.calls))
	copy(out, p.calls)
	return out
}

func (p *MockRouteProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}
