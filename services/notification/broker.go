package notification

import (
	"context"

	"github.com/Nikk8744/F-T-T-sub000/services/logger"
)

// Broker pushes a payload to a user's live connections, wherever they are connected
type Broker interface {
	Publish(ctx context.Context, userID uint, payload []byte) error
}

// LocalBroker delivers to connections held by this process
type LocalBroker struct {
	dir    *Directory
	logger logger.Logger
}

func NewLocalBroker(dir *Directory, l logger.Logger) *LocalBroker {
	return &LocalBroker{dir: dir, logger: l}
}

// Publish never waits on the client. An offline user is not an error.
func (b *LocalBroker) Publish(_ context.Context, userID uint, payload []byte) error {
	n, err := b.dir.Deliver(userID, payload)
	if n == 0 && err == nil {
		b.logger.Debug("user %d offline, live push skipped", userID)
	}
	return err
}
