// Package capture runs the per-request pipeline: build the fingerprint,
// serialize it and seal the result.
package capture

import (
	"fmt"
	"time"

	"github.com/oddeye/oddeye/pkg/fingerprint"
	"github.com/oddeye/oddeye/pkg/metrics"
)

// Sealer encrypts a serialized fingerprint. *seal.Sealer implements it.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
}

// Pipeline is shared by all request handlers. It holds no per-request state.
type Pipeline struct {
	sealer  Sealer
	now     func() time.Time
	metrics *metrics.Collectors
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the capture clock. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithMetrics records failures and sealed sizes on c.
func WithMetrics(c *metrics.Collectors) Option {
	return func(p *Pipeline) {
		p.metrics = c
	}
}

// New returns a Pipeline sealing with sealer.
func New(sealer Sealer, opts ...Option) *Pipeline {
	p := &Pipeline{
		sealer: sealer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fingerprint builds the unsealed record for fields.
func (p *Pipeline) Fingerprint(fields []fingerprint.HeaderField) fingerprint.Fingerprint {
	return fingerprint.Build(fields, p.now)
}

// Seal builds, serializes and seals the fingerprint for fields. Errors are
// never retried; callers should answer with a generic failure.
func (p *Pipeline) Seal(fields []fingerprint.HeaderField) ([]byte, error) {
	fp := p.Fingerprint(fields)

	payload, err := fingerprint.Marshal(fp)
	if err != nil {
		p.metrics.ObserveFailure(metrics.ReasonSerialize)
		return nil, fmt.Errorf("serialize fingerprint: %w", err)
	}

	sealed, err := p.sealer.Seal(payload)
	if err != nil {
		p.metrics.ObserveFailure(metrics.ReasonSeal)
		return nil, fmt.Errorf("seal fingerprint: %w", err)
	}

	p.metrics.ObserveSize(len(sealed))
	return sealed, nil
}
