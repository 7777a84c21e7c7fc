package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fanyer/presto-sub061/internal/codec"
	"github.com/fanyer/presto-sub061/internal/dataitem"
	"github.com/fanyer/presto-sub061/internal/logger"
)

// Queue file names inside the queue directory.
const (
	QueueFileName    = "sync_queue.xml"
	OutgoingFileName = "sync_outgoing.xml"
)

// FileQueueStore keeps the pending queue in two XML documents: one for the
// items waiting to be sent and one for the batch currently in flight.
type FileQueueStore struct {
	dir    string
	logger *logger.Logger
	mu     sync.Mutex
}

// NewFileQueueStore returns a store rooted at dir. The directory is created
// on first write.
func NewFileQueueStore(dir string, log *logger.Logger) (*FileQueueStore, error) {
	if dir == "" {
		return nil, ErrQueueDirRequired
	}
	return &FileQueueStore{dir: dir, logger: log}, nil
}

// Dir returns the queue directory.
func (s *FileQueueStore) Dir() string {
	return s.dir
}

// SaveQueue replaces both queue files. An empty outgoing batch removes its
// file so that a restart does not resend anything.
func (s *FileQueueStore) SaveQueue(ctx context.Context, active, outgoing []*dataitem.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("error creating queue dir: %w", err)
	}

	if err := s.writeFile(QueueFileName, active); err != nil {
		return err
	}

	if len(outgoing) == 0 {
		err := os.Remove(filepath.Join(s.dir, OutgoingFileName))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error removing outgoing queue: %w", err)
		}
		return nil
	}
	return s.writeFile(OutgoingFileName, outgoing)
}

// LoadQueue reads both queue files. Missing files are empty queues.
func (s *FileQueueStore) LoadQueue(ctx context.Context) (active, outgoing []*dataitem.Item, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	active, err = ReadQueueFile(filepath.Join(s.dir, QueueFileName))
	if err != nil {
		return nil, nil, err
	}
	outgoing, err = ReadQueueFile(filepath.Join(s.dir, OutgoingFileName))
	if err != nil {
		return nil, nil, err
	}

	s.logger.Debug().
		Int("active", len(active)).
		Int("outgoing", len(outgoing)).
		Str("dir", s.dir).
		Msg("queue loaded")
	return active, outgoing, nil
}

func (s *FileQueueStore) writeFile(name string, items []*dataitem.Item) error {
	var buf bytes.Buffer
	if err := codec.EncodeQueue(&buf, items); err != nil {
		return fmt.Errorf("error encoding %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error closing %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error replacing %s: %w", name, err)
	}
	return nil
}

// ReadQueueFile decodes one queue document. A missing file yields no items.
func ReadQueueFile(path string) ([]*dataitem.Item, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error opening queue file: %w", err)
	}
	defer f.Close()

	items, err := codec.DecodeQueue(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return items, nil
}
