package conversation

import "github.com/alexanderramin/marty/internal/domain"

// Phase is the planning session's position in the conversation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingHours
	PhaseAwaitingScheduleConfirmation
	PhaseAwaitingFinalConfirmation
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingHours:
		return "awaiting_hours"
	case PhaseAwaitingScheduleConfirmation:
		return "awaiting_schedule_confirmation"
	case PhaseAwaitingFinalConfirmation:
		return "awaiting_final_confirmation"
	default:
		return "unknown"
	}
}

// PlanningSession is the single in-progress planning conversation.
//
// Invariants:
//   - Phase == PhaseIdle iff TaskDescription == "".
//   - RequiredHours > 0 iff Phase is one of the two confirmation phases.
//   - ProposedBlocks is non-empty iff Phase == PhaseAwaitingFinalConfirmation.
type PlanningSession struct {
	ID              string
	Phase           Phase
	TaskDescription string
	DeadlinePhrase  string
	RequiredHours   float64
	ProposedBlocks  []domain.WorkBlock
}

// Active reports whether a session is in progress.
func (s *PlanningSession) Active() bool {
	return s.Phase != PhaseIdle
}

func (s *PlanningSession) reset() {
	*s = PlanningSession{}
}

func (s PlanningSession) clone() PlanningSession {
	s.ProposedBlocks = append([]domain.WorkBlock(nil), s.ProposedBlocks...)
	return s
}
