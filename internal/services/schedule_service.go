package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/a-sokolov-dev/TrainerDeskBack/internal/models"
	"github.com/a-sokolov-dev/TrainerDeskBack/internal/store"
	"github.com/a-sokolov-dev/TrainerDeskBack/pkg/timeutil"
)

var (
	ErrSlotTaken          = errors.New("time slot already taken")
	ErrNoCreditsRemaining = errors.New("client has no sessions left")
	ErrInvalidTransition  = errors.New("invalid status transition")
	// ErrPartialFailure marks a booking/cancellation that applied the
	// credit change or the session write but could not roll the other
	// back. The caller must reconcile manually instead of retrying.
	ErrPartialFailure = errors.New("operation partially applied")
)

// ScheduleGrid bounds the booking day and fixes the slot size.
type ScheduleGrid struct {
	DayStartMinutes int
	DayEndMinutes   int
	SlotMinutes     int
}

func DefaultGrid() ScheduleGrid {
	return ScheduleGrid{
		DayStartMinutes: 8 * 60,
		DayEndMinutes:   22 * 60,
		SlotMinutes:     30,
	}
}

// ScheduleService owns the shared calendar. It keeps an in-memory mirror
// of every session, loaded once at startup; a single mutex funnels all
// mutating calls so the availability check and the write it guards are
// one atomic step. The process is assumed to hold the only mirror.
type ScheduleService struct {
	mu        sync.Mutex
	trainings store.TrainingStore
	history   store.HistoryStore
	credits   *CreditBook
	grid      ScheduleGrid
	mirror    []models.Training
	now       func() time.Time
}

func NewScheduleService(
	trainings store.TrainingStore,
	history store.HistoryStore,
	credits *CreditBook,
	grid ScheduleGrid,
) *ScheduleService {
	if grid.SlotMinutes <= 0 {
		grid = DefaultGrid()
	}
	return &ScheduleService{
		trainings: trainings,
		history:   history,
		credits:   credits,
		grid:      grid,
		mirror:    make([]models.Training, 0),
		now:       time.Now,
	}
}

// Load refreshes the mirror from the store. Called once during startup.
func (s *ScheduleService) Load(ctx context.Context) error {
	trainings, err := s.trainings.GetAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.mirror = trainings
	s.mu.Unlock()
	return nil
}

type BookingInput struct {
	ClientID        int64
	Date            string
	StartTime       string
	DurationMinutes int
	Price           *float64
	Note            *string
}

// CheckAvailability reports whether the candidate slot is free across
// the whole calendar, regardless of client. excludeID ignores the
// session being edited; pass 0 for a fresh booking.
func (s *ScheduleService) CheckAvailability(input BookingInput, excludeID int64) (bool, error) {
	startMinutes, err := s.validateSlot(input)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slotFree(input.Date, startMinutes, input.DurationMinutes, excludeID), nil
}

func (s *ScheduleService) BookSession(ctx context.Context, input BookingInput) (*models.Training, error) {
	if input.ClientID <= 0 {
		return nil, ErrInvalidInput
	}
	startMinutes, err := s.validateSlot(input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := s.credits.Get(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if !s.slotFree(input.Date, startMinutes, input.DurationMinutes, 0) {
		return nil, ErrSlotTaken
	}

	consumed := false
	if client.Type == models.ClientTypeModule {
		if client.RemainingSessions <= 0 {
			return nil, ErrNoCreditsRemaining
		}
		if _, err := s.credits.Adjust(ctx, client.ID, -1); err != nil {
			return nil, err
		}
		consumed = true
	}

	price := client.SessionRate()
	if input.Price != nil {
		price = *input.Price
	}

	created, err := s.trainings.Add(ctx, &models.Training{
		ClientID:        input.ClientID,
		Date:            input.Date,
		StartTime:       input.StartTime,
		DurationMinutes: input.DurationMinutes,
		Price:           price,
		Status:          models.TrainingStatusScheduled,
		Note:            input.Note,
	})
	if err != nil {
		if consumed {
			if _, refundErr := s.credits.Adjust(ctx, client.ID, 1); refundErr != nil {
				return nil, fmt.Errorf("%w: session write failed (%v) and credit refund failed (%v)", ErrPartialFailure, err, refundErr)
			}
		}
		return nil, err
	}

	s.mirror = append(s.mirror, *created)
	return created, nil
}

type RescheduleInput struct {
	ID int64
	BookingInput
}

// RescheduleSession re-validates the slot excluding the session's own
// prior interval. Credits move only when the owning client changes.
func (s *ScheduleService) RescheduleSession(ctx context.Context, input RescheduleInput) (*models.Training, error) {
	if input.ClientID <= 0 {
		return nil, ErrInvalidInput
	}
	startMinutes, err := s.validateSlot(input.BookingInput)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.indexOf(input.ID)
	if index < 0 {
		return nil, ErrNotFound
	}
	existing := s.mirror[index]

	client, err := s.credits.Get(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if !s.slotFree(input.Date, startMinutes, input.DurationMinutes, input.ID) {
		return nil, ErrSlotTaken
	}

	price := existing.Price
	clientChanged := existing.ClientID != input.ClientID
	if clientChanged {
		price = client.SessionRate()
	}
	if input.Price != nil {
		price = *input.Price
	}

	consumed := false
	refunded := false
	if clientChanged {
		if client.Type == models.ClientTypeModule {
			if client.RemainingSessions <= 0 {
				return nil, ErrNoCreditsRemaining
			}
			if _, err := s.credits.Adjust(ctx, client.ID, -1); err != nil {
				return nil, err
			}
			consumed = true
		}
		// An orphaned previous client skips the refund; any other read
		// failure aborts before the session is touched.
		previous, err := s.credits.Get(ctx, existing.ClientID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, s.undoCreditMoves(ctx, client.ID, existing.ClientID, consumed, false, err)
		}
		if err == nil && previous.Type == models.ClientTypeModule {
			if _, err := s.credits.Adjust(ctx, previous.ID, 1); err != nil {
				return nil, s.undoCreditMoves(ctx, client.ID, existing.ClientID, consumed, false, err)
			}
			refunded = true
		}
	}

	updated := existing
	updated.ClientID = input.ClientID
	updated.Date = input.Date
	updated.StartTime = input.StartTime
	updated.DurationMinutes = input.DurationMinutes
	updated.Price = price
	updated.Note = input.Note

	if err := s.trainings.Update(ctx, &updated); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = ErrNotFound
		}
		return nil, s.undoCreditMoves(ctx, client.ID, existing.ClientID, consumed, refunded, err)
	}

	s.mirror[index] = updated
	return &updated, nil
}

// CancelSession refunds a module client's credit and removes the
// session. Unknown ids are a silent no-op; completed sessions stay.
func (s *ScheduleService) CancelSession(ctx context.Context, sessionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.indexOf(sessionID)
	if index < 0 {
		return nil
	}
	existing := s.mirror[index]
	if existing.Status == models.TrainingStatusCompleted {
		return ErrInvalidTransition
	}

	// An orphaned client skips the refund; any other read failure aborts
	// before the session is touched so the credit cannot be lost.
	client, err := s.credits.Get(ctx, existing.ClientID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	refunded := false
	if err == nil && client.Type == models.ClientTypeModule {
		if _, err := s.credits.Adjust(ctx, client.ID, 1); err != nil {
			return err
		}
		refunded = true
	}

	if err := s.trainings.Delete(ctx, sessionID); err != nil {
		if refunded {
			if _, undoErr := s.credits.Adjust(ctx, existing.ClientID, -1); undoErr != nil {
				return fmt.Errorf("%w: session delete failed (%v) and refund rollback failed (%v)", ErrPartialFailure, err, undoErr)
			}
		}
		return err
	}

	s.mirror = append(s.mirror[:index], s.mirror[index+1:]...)
	return nil
}

// CompleteSession marks a scheduled session delivered and appends the
// completed-session event to the client history log.
func (s *ScheduleService) CompleteSession(ctx context.Context, sessionID int64) (*models.Training, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.indexOf(sessionID)
	if index < 0 {
		return nil, ErrNotFound
	}
	existing := s.mirror[index]
	if existing.Status != models.TrainingStatusScheduled {
		return nil, ErrInvalidTransition
	}

	updated := existing
	updated.Status = models.TrainingStatusCompleted
	if err := s.trainings.Update(ctx, &updated); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	_, err := s.history.Add(ctx, &models.HistoryEntry{
		ClientID:        existing.ClientID,
		Date:            s.now(),
		Amount:          existing.Price,
		DurationMinutes: existing.DurationMinutes,
	})
	if err != nil {
		if revertErr := s.trainings.Update(ctx, &existing); revertErr != nil {
			return nil, fmt.Errorf("%w: history write failed (%v) and status revert failed (%v)", ErrPartialFailure, err, revertErr)
		}
		return nil, err
	}

	s.mirror[index] = updated
	return &updated, nil
}

// RemoveClientSessions drops every session of one client from the store
// and the mirror. Part of the client delete cascade; no credits move
// because the client record is going away with them.
func (s *ScheduleService) RemoveClientSessions(ctx context.Context, clientID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.Training, 0, len(s.mirror))
	var failed error
	for _, training := range s.mirror {
		if failed != nil || training.ClientID != clientID {
			kept = append(kept, training)
			continue
		}
		if err := s.trainings.Delete(ctx, training.ID); err != nil {
			failed = err
			kept = append(kept, training)
		}
	}
	s.mirror = kept
	return failed
}

// SessionsOn yields the sessions booked for one date. The sequence is a
// pure filter over a snapshot: finite, restartable, nothing consumed.
func (s *ScheduleService) SessionsOn(date string) iter.Seq[models.Training] {
	return func(yield func(models.Training) bool) {
		s.mu.Lock()
		matched := make([]models.Training, 0)
		for _, training := range s.mirror {
			if training.Date == date {
				matched = append(matched, training)
			}
		}
		s.mu.Unlock()

		for _, training := range matched {
			if !yield(training) {
				return
			}
		}
	}
}

// Snapshot returns consistent copies of the session mirror and the
// client roster, taken under the scheduler lock so reporting never sees
// a half-applied booking.
func (s *ScheduleService) Snapshot(ctx context.Context) ([]models.Training, []models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.credits.All(ctx)
	if err != nil {
		return nil, nil, err
	}
	trainings := make([]models.Training, len(s.mirror))
	copy(trainings, s.mirror)
	return trainings, clients, nil
}

func (s *ScheduleService) validateSlot(input BookingInput) (int, error) {
	if input.DurationMinutes <= 0 {
		return 0, ErrInvalidInput
	}
	if _, err := timeutil.ParseDate(input.Date); err != nil {
		return 0, ErrInvalidInput
	}
	startMinutes, err := timeutil.ClockMinutes(input.StartTime)
	if err != nil {
		return 0, ErrInvalidInput
	}
	if !timeutil.IsSlotAligned(startMinutes, s.grid.SlotMinutes) {
		return 0, ErrInvalidInput
	}
	if startMinutes < s.grid.DayStartMinutes || startMinutes >= s.grid.DayEndMinutes {
		return 0, ErrInvalidInput
	}
	if startMinutes+input.DurationMinutes > s.grid.DayEndMinutes {
		return 0, ErrInvalidInput
	}
	return startMinutes, nil
}

// Half-open intervals [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1.
// Cancelled sessions keep no slot.
func (s *ScheduleService) slotFree(date string, startMinutes, durationMinutes int, excludeID int64) bool {
	end := startMinutes + durationMinutes
	for _, training := range s.mirror {
		if training.ID == excludeID || training.Date != date {
			continue
		}
		if training.Status == models.TrainingStatusCancelled {
			continue
		}
		otherStart, err := timeutil.ClockMinutes(training.StartTime)
		if err != nil {
			continue
		}
		otherEnd := otherStart + training.DurationMinutes
		if startMinutes < otherEnd && otherStart < end {
			return false
		}
	}
	return true
}

func (s *ScheduleService) indexOf(sessionID int64) int {
	for i := range s.mirror {
		if s.mirror[i].ID == sessionID {
			return i
		}
	}
	return -1
}

// undoCreditMoves reverses the consume/refund pair of a client change.
// When the reversal itself fails the error escalates to PartialFailure.
func (s *ScheduleService) undoCreditMoves(
	ctx context.Context,
	newClientID, oldClientID int64,
	consumed, refunded bool,
	cause error,
) error {
	if refunded {
		if _, err := s.credits.Adjust(ctx, oldClientID, -1); err != nil {
			return fmt.Errorf("%w: %v (refund rollback failed: %v)", ErrPartialFailure, cause, err)
		}
	}
	if consumed {
		if _, err := s.credits.Adjust(ctx, newClientID, 1); err != nil {
			return fmt.Errorf("%w: %v (consume rollback failed: %v)", ErrPartialFailure, cause, err)
		}
	}
	return cause
}
