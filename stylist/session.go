package stylist

import (
	"fmt"
	"sync"

	"stylistapi/models"
)

const (
	stageAnalyzing    = "Analyzing your item..."
	stageCompleted    = "Completed!"
	failureMessageFmt = "Failed to generate outfits. %s"
)

func generatingStage(o models.Occasion) string {
	return fmt.Sprintf("Generating %s outfit...", o)
}

// Attempt identifies one generation run. Updates carrying an id other than
// the session's current one are dropped.
type Attempt struct {
	ID    uint64
	Image *models.UploadedImage
}

// Session is the state of one browser visitor: the uploaded item, the three
// outfit slots and the progress of the current attempt. All fields are
// guarded by mu.
type Session struct {
	ID string

	mu      sync.RWMutex
	image   *models.UploadedImage
	outfits *[len(models.Occasions)]models.Outfit
	state   models.GenerationState
	phase   models.Phase
	slot    int
	attempt uint64
}

func NewSession(id string) *Session {
	return &Session{ID: id, phase: models.PhaseIdle}
}

// UploadImage replaces the uploaded item and returns the session to idle.
// Any running attempt becomes stale; its in-flight request is not cancelled
// but its result is discarded.
func (s *Session) UploadImage(img *models.UploadedImage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.image = img
	s.outfits = nil
	s.state = models.GenerationState{}
	s.phase = models.PhaseIdle
	s.slot = 0
	s.attempt++
}

// Begin starts a new attempt and creates the three pending placeholders.
func (s *Session) Begin() (Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.image == nil {
		return Attempt{}, ErrNoImage
	}
	if s.state.IsLoading {
		return Attempt{}, ErrBusy
	}

	var outfits [len(models.Occasions)]models.Outfit
	for i, occasion := range models.Occasions {
		outfits[i] = models.PendingOutfit(occasion)
	}
	s.outfits = &outfits
	s.state = models.GenerationState{IsLoading: true, Stage: stageAnalyzing}
	s.phase = models.PhaseDescribingItem
	s.slot = 0
	s.attempt++

	return Attempt{ID: s.attempt, Image: s.image}, nil
}

// current must be called with mu held.
func (s *Session) current(id uint64) bool {
	return s.attempt == id && s.outfits != nil
}

func (s *Session) applyDescriptions(id uint64, descriptions models.OutfitDescriptions) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(id) {
		return false
	}
	for i, occasion := range models.Occasions {
		s.outfits[i].Description = descriptions.For(occasion)
	}
	return true
}

func (s *Session) beginSlot(id uint64, occasion models.Occasion) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(id) {
		return false
	}
	s.phase = models.PhaseGeneratingOutfit
	s.slot = int(occasion)
	s.state.Stage = generatingStage(occasion)
	return true
}

// applyImage fills one slot. The other slots are left as they are.
func (s *Session) applyImage(id uint64, occasion models.Occasion, imageURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(id) {
		return false
	}
	slot := &s.outfits[occasion]
	slot.ImageURL = &imageURL
	slot.IsLoading = false
	return true
}

func (s *Session) complete(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(id) {
		return false
	}
	s.phase = models.PhaseCompleted
	s.state = models.GenerationState{Stage: stageCompleted}
	return true
}

// fail clears every slot, including the ones that already have an image.
func (s *Session) fail(id uint64, cause error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current(id) {
		return false
	}
	message := fmt.Sprintf(failureMessageFmt, cause.Error())
	s.outfits = nil
	s.phase = models.PhaseErrored
	s.state = models.GenerationState{Error: &message}
	return true
}

// Snapshot copies the session for rendering.
func (s *Session) Snapshot() models.SessionView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := models.SessionView{
		SessionID: s.ID,
		HasImage:  s.image != nil,
		Outfits:   []models.Outfit{},
		State:     s.state,
		Phase:     s.phase,
		Attempt:   s.attempt,
	}
	if s.image != nil {
		view.FileName = s.image.FileName
		view.Preview = s.image.Preview
	}
	if s.outfits != nil {
		view.Outfits = append(view.Outfits, s.outfits[:]...)
	}
	if s.phase == models.PhaseGeneratingOutfit {
		slot := s.slot
		view.Slot = &slot
	}
	return view
}
