// Package session persists per-conversation state between chat turns.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"github.com/steezy2401/smartexp/internal/model"
)

// Store is a diskv-backed session store. Each conversation's state is
// one JSON document keyed by the conversation identifier.
type Store struct {
	d *diskv.Diskv
}

// NewStore creates a session store rooted at basePath.
func NewStore(basePath string) (*Store, error) {
	if basePath == "" {
		return nil, errors.New("session store path cannot be empty")
	}

	return &Store{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

// Get returns the state for a conversation. Conversations never seen
// before get a fresh zero-value state.
func (s *Store) Get(ctx context.Context, conversationID string) (*model.SessionState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if conversationID == "" {
		return nil, errors.New("conversation ID cannot be empty")
	}

	val, err := s.d.Read(conversationID)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.SessionState{}, nil
		}
		return nil, fmt.Errorf("failed to read session %q: %w", conversationID, err)
	}

	state := &model.SessionState{}
	if err := json.Unmarshal(val, state); err != nil {
		return nil, fmt.Errorf("failed to decode session %q: %w", conversationID, err)
	}
	return state, nil
}

// Put writes a conversation's state through to disk.
func (s *Store) Put(ctx context.Context, conversationID string, state *model.SessionState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if conversationID == "" {
		return errors.New("conversation ID cannot be empty")
	}
	if state == nil {
		return errors.New("state cannot be nil")
	}

	val, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %q: %w", conversationID, err)
	}

	if err := s.d.Write(conversationID, val); err != nil {
		return fmt.Errorf("failed to write session %q: %w", conversationID, err)
	}
	return nil
}
