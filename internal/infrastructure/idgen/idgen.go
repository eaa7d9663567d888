package idgen

import (
	"github.com/google/uuid"
	"go.uber.org/fx"
)

// Generator produces identifiers for documents, blocks and signature
// records. It is injected rather than called ad hoc so tests can pin
// deterministic IDs.
type Generator interface {
	NewID() string
}

type uuidGenerator struct{}

func NewGenerator() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

var Module = fx.Module("idgen",
	fx.Provide(NewGenerator),
)
