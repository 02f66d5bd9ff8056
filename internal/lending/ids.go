package lending

import (
	"crypto/rand"

	"github.com/library-circulation/go-api-server/internal/shared/clock"
	"github.com/oklog/ulid/v2"
)

// IDGen issues public loan references
type IDGen interface {
	New() (string, error)
}

// ulidGen stamps ids with the service clock so ids sort by borrow time
type ulidGen struct {
	clock clock.Clock
}

func (g ulidGen) New() (string, error) {
	t := g.clock.Now()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
