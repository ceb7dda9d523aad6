package tracker

import (
	"sync"
)

// Board is a Renderer that keeps the latest view for the HTTP handler.
// It starts in the loading state.
type Board struct {
	mu   sync.RWMutex
	view View
	// last ready model, kept while a later run is loading or failing
	lastReady *ViewModel
}

func NewBoard() *Board {
	return &Board{
		view: View{State: StateLoading},
	}
}

func (b *Board) Render(view View) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.view = view
	if view.State == StateReady && view.Model != nil {
		b.lastReady = view.Model
	}
}

func (b *Board) View() View {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.view
}

// LastReady returns the most recent ready model, even if the board shows
// a loading or error state right now.
func (b *Board) LastReady() (*ViewModel, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastReady, b.lastReady != nil
}
