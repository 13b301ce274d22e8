package manager

import "sync"

// MemoryPublisher records every published event. It backs the lifecycle
// assertions in tests and is safe for use from load goroutines.
type MemoryPublisher struct {
	mu  sync.Mutex
	log []Event
}

func NewMemoryPublisher() *MemoryPublisher { return &MemoryPublisher{} }

func (p *MemoryPublisher) Publish(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log = append(p.log, e)
}

// For returns the recorded events for modelID; "" selects all of them.
func (p *MemoryPublisher) For(modelID string) []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []Event
	for _, e := range p.log {
		if modelID == "" || e.ModelID == modelID {
			out = append(out, e)
		}
	}
	return out
}

// Names is For reduced to event names, in publish order.
func (p *MemoryPublisher) Names(modelID string) []string {
	evs := p.For(modelID)
	names := make([]string, 0, len(evs))
	for _, e := range evs {
		names = append(names, e.Name)
	}
	return names
}
