package domain

import (
	"time"

	sharedDomain "github.com/fiesc/examsched/internal/shared/domain"
	"github.com/google/uuid"
)

// Status is the canonical assignment lifecycle state. External callers
// using other vocabularies map into this enumeration at the boundary.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusProposed  Status = "PROPOSED"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusAlternate Status = "ALTERNATE"
	StatusCancelled Status = "CANCELLED"
	StatusConfirmed Status = "CONFIRMED"
)

// IsValid checks if the status is part of the canonical enumeration.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusProposed, StatusAccepted, StatusRejected,
		StatusAlternate, StatusCancelled, StatusConfirmed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is permitted.
// REJECTED is not terminal: it blocks the review cycle but may still be
// cancelled by the secretariat before a replacement draft is issued.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusConfirmed
}

// ExamType distinguishes written exams from project defenses.
type ExamType string

const (
	ExamTypeExam    ExamType = "EXAM"
	ExamTypeProject ExamType = "PROJECT"
)

// IsValid checks if the exam type is supported.
func (t ExamType) IsValid() bool {
	return t == ExamTypeExam || t == ExamTypeProject
}

// ReviewDecision is a teacher's response to a proposed date.
type ReviewDecision string

const (
	ReviewAccept    ReviewDecision = "ACCEPT"
	ReviewReject    ReviewDecision = "REJECT"
	ReviewAlternate ReviewDecision = "ALTERNATE"
	ReviewCancel    ReviewDecision = "CANCEL"
)

// IsValid checks if the decision is supported.
func (d ReviewDecision) IsValid() bool {
	switch d {
	case ReviewAccept, ReviewReject, ReviewAlternate, ReviewCancel:
		return true
	default:
		return false
	}
}

// OperatingHours bounds the start hour and end of an exam to the
// institution's working day.
type OperatingHours struct {
	StartHour int
	EndHour   int
}

// DefaultOperatingHours returns the institution default of 08:00-18:00.
func DefaultOperatingHours() OperatingHours {
	return OperatingHours{StartHour: 8, EndHour: 18}
}

// Allows reports whether an exam starting at hour with the given duration
// fits inside the operating day.
func (h OperatingHours) Allows(hour, durationMins int) bool {
	if hour < h.StartHour || hour >= h.EndHour {
		return false
	}
	return hour*60+durationMins <= h.EndHour*60
}

// ExamAssignment schedules one exam for a (discipline, student group,
// exam type) key. It is the aggregate the workflow engine operates on:
// all transitions go through its methods, which enforce role bindings
// and state guards before any field changes.
type ExamAssignment struct {
	sharedDomain.BaseAggregateRoot
	disciplineID    uuid.UUID
	studentGroup    string
	examType        ExamType
	mainTeacherID   uuid.UUID
	secondTeacherID uuid.UUID
	roomID          uuid.UUID

	proposedDate  *time.Time
	proposedHour  int
	durationMins  int
	alternateDate *time.Time
	alternateHour int

	status Status
}

// NewExamAssignment creates an assignment in DRAFT. Only the secretariat
// (or an administrator) may create assignments; the two examiners must be
// distinct. Referential checks against the directory are the caller's
// responsibility.
func NewExamAssignment(
	actor Actor,
	disciplineID uuid.UUID,
	studentGroup string,
	examType ExamType,
	mainTeacherID, secondTeacherID uuid.UUID,
	roomID uuid.UUID,
) (*ExamAssignment, error) {
	if !actor.canManage() {
		return nil, &AuthorizationError{Action: "create", Role: actor.Role}
	}
	if disciplineID == uuid.Nil {
		return nil, &ValidationError{Field: "discipline_id", Reason: "must not be empty"}
	}
	if studentGroup == "" {
		return nil, &ValidationError{Field: "student_group", Reason: "must not be empty"}
	}
	if !examType.IsValid() {
		return nil, &ValidationError{Field: "exam_type", Reason: "must be EXAM or PROJECT"}
	}
	if mainTeacherID == uuid.Nil || secondTeacherID == uuid.Nil {
		return nil, &ValidationError{Field: "teacher_id", Reason: "both examiners are required"}
	}
	if mainTeacherID == secondTeacherID {
		return nil, &ValidationError{Field: "second_teacher_id", Reason: "examiners must be distinct"}
	}

	a := &ExamAssignment{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		disciplineID:      disciplineID,
		studentGroup:      studentGroup,
		examType:          examType,
		mainTeacherID:     mainTeacherID,
		secondTeacherID:   secondTeacherID,
		roomID:            roomID,
		status:            StatusDraft,
	}

	a.AddDomainEvent(NewAssignmentCreated(a, actor))
	return a, nil
}

// Getters
func (a *ExamAssignment) DisciplineID() uuid.UUID    { return a.disciplineID }
func (a *ExamAssignment) StudentGroup() string       { return a.studentGroup }
func (a *ExamAssignment) ExamType() ExamType         { return a.examType }
func (a *ExamAssignment) MainTeacherID() uuid.UUID   { return a.mainTeacherID }
func (a *ExamAssignment) SecondTeacherID() uuid.UUID { return a.secondTeacherID }
func (a *ExamAssignment) RoomID() uuid.UUID          { return a.roomID }
func (a *ExamAssignment) ProposedDate() *time.Time   { return a.proposedDate }
func (a *ExamAssignment) ProposedHour() int          { return a.proposedHour }
func (a *ExamAssignment) DurationMins() int          { return a.durationMins }
func (a *ExamAssignment) AlternateDate() *time.Time  { return a.alternateDate }
func (a *ExamAssignment) AlternateHour() int         { return a.alternateHour }
func (a *ExamAssignment) Status() Status             { return a.status }

// TeacherIDs returns both bound examiners.
func (a *ExamAssignment) TeacherIDs() []uuid.UUID {
	return []uuid.UUID{a.mainTeacherID, a.secondTeacherID}
}

// IsBoundTeacher reports whether id is one of the two examiners.
func (a *ExamAssignment) IsBoundTeacher(id uuid.UUID) bool {
	return id == a.mainTeacherID || id == a.secondTeacherID
}

// EffectiveDate returns the authoritative date: the teacher's alternate
// while one is pending, otherwise the group leader's proposal.
func (a *ExamAssignment) EffectiveDate() *time.Time {
	if a.alternateDate != nil {
		return a.alternateDate
	}
	return a.proposedDate
}

// EffectiveHour returns the start hour paired with EffectiveDate.
func (a *ExamAssignment) EffectiveHour() int {
	if a.alternateDate != nil {
		return a.alternateHour
	}
	return a.proposedHour
}

// Propose moves DRAFT to PROPOSED with the group leader's date. Period
// containment is validated by the caller against the period repository
// before invoking; hour bounds are enforced here.
func (a *ExamAssignment) Propose(actor Actor, date time.Time, hour, durationMins int, hours OperatingHours) error {
	if err := a.guardGroupLeader(actor, "propose"); err != nil {
		return err
	}
	if a.status != StatusDraft {
		return &StateError{Action: "propose", Status: a.status}
	}
	return a.applyProposal(actor, date, hour, durationMins, hours)
}

// Review records the teacher's response to a proposed date. ALTERNATE
// requires a counter-proposal date and hour, validated against the same
// hour bounds as proposals.
func (a *ExamAssignment) Review(actor Actor, decision ReviewDecision, altDate *time.Time, altHour int, hours OperatingHours) error {
	if err := a.guardBoundTeacher(actor, "review"); err != nil {
		return err
	}
	if a.status != StatusProposed {
		return &StateError{Action: "review", Status: a.status}
	}

	switch decision {
	case ReviewAccept:
		a.transition(actor, StatusAccepted)
	case ReviewReject:
		a.transition(actor, StatusRejected)
	case ReviewCancel:
		a.transition(actor, StatusCancelled)
	case ReviewAlternate:
		if altDate == nil {
			return &ValidationError{Field: "alternate_date", Reason: "required for an alternate proposal"}
		}
		if !hours.Allows(altHour, a.durationMins) {
			return &ValidationError{Field: "alternate_hour", Reason: "outside operating hours"}
		}
		day := truncateToDay(*altDate)
		a.alternateDate = &day
		a.alternateHour = altHour
		a.transition(actor, StatusAlternate)
	default:
		return &ValidationError{Field: "decision", Reason: "unknown review decision"}
	}

	return nil
}

// AcceptAlternate lets the group leader accept the teacher's
// counter-proposal. The alternate date becomes the authoritative
// proposal and the assignment moves to ACCEPTED.
func (a *ExamAssignment) AcceptAlternate(actor Actor) error {
	if err := a.guardGroupLeader(actor, "accept the alternate for"); err != nil {
		return err
	}
	if a.status != StatusAlternate {
		return &StateError{Action: "accept the alternate for", Status: a.status}
	}

	a.proposedDate = a.alternateDate
	a.proposedHour = a.alternateHour
	a.alternateDate = nil
	a.alternateHour = 0
	a.transition(actor, StatusAccepted)
	return nil
}

// Repropose lets the group leader (or a bound teacher) answer an
// alternate with a fresh date, returning the assignment to PROPOSED for
// a new review round.
func (a *ExamAssignment) Repropose(actor Actor, date time.Time, hour, durationMins int, hours OperatingHours) error {
	groupErr := a.guardGroupLeader(actor, "re-propose")
	if groupErr != nil {
		if err := a.guardBoundTeacher(actor, "re-propose"); err != nil {
			return groupErr
		}
	}
	if a.status != StatusAlternate {
		return &StateError{Action: "re-propose", Status: a.status}
	}
	a.alternateDate = nil
	a.alternateHour = 0
	return a.applyProposal(actor, date, hour, durationMins, hours)
}

// Confirm finalizes an ACCEPTED assignment. The conflict check against
// other bookings runs in the command handler inside the same transaction;
// this method enforces role, state, and the structural prerequisites of a
// confirmed record.
func (a *ExamAssignment) Confirm(actor Actor) error {
	if err := a.guardBoundTeacher(actor, "confirm"); err != nil {
		return err
	}
	if a.status != StatusAccepted {
		return &StateError{Action: "confirm", Status: a.status}
	}
	if a.EffectiveDate() == nil {
		return &ValidationError{Field: "proposed_date", Reason: "cannot confirm without a scheduled date"}
	}
	if a.roomID == uuid.Nil {
		return &ValidationError{Field: "room_id", Reason: "cannot confirm without an assigned room"}
	}

	a.transition(actor, StatusConfirmed)
	return nil
}

// Cancel withdraws any non-terminal assignment. Reserved for the
// secretariat and administrators.
func (a *ExamAssignment) Cancel(actor Actor) error {
	if !actor.canManage() {
		return &AuthorizationError{Action: "cancel", Role: actor.Role}
	}
	if a.status.IsTerminal() {
		return &StateError{Action: "cancel", Status: a.status}
	}

	a.transition(actor, StatusCancelled)
	return nil
}

// AssignRoom binds or replaces the room while the assignment is not yet
// confirmed or cancelled.
func (a *ExamAssignment) AssignRoom(actor Actor, roomID uuid.UUID) error {
	if !actor.canManage() {
		return &AuthorizationError{Action: "assign a room to", Role: actor.Role}
	}
	if a.status.IsTerminal() {
		return &StateError{Action: "assign a room to", Status: a.status}
	}
	if roomID == uuid.Nil {
		return &ValidationError{Field: "room_id", Reason: "must not be empty"}
	}

	a.roomID = roomID
	a.Touch()
	return nil
}

func (a *ExamAssignment) applyProposal(actor Actor, date time.Time, hour, durationMins int, hours OperatingHours) error {
	if durationMins <= 0 {
		return &ValidationError{Field: "duration", Reason: "must be positive"}
	}
	if !hours.Allows(hour, durationMins) {
		return &ValidationError{Field: "hour", Reason: "outside operating hours"}
	}

	day := truncateToDay(date)
	a.proposedDate = &day
	a.proposedHour = hour
	a.durationMins = durationMins
	a.transition(actor, StatusProposed)
	return nil
}

func (a *ExamAssignment) guardGroupLeader(actor Actor, action string) error {
	if actor.Role != RoleGroupLeader || actor.StudentGroup != a.studentGroup {
		return &AuthorizationError{Action: action, Role: actor.Role}
	}
	return nil
}

func (a *ExamAssignment) guardBoundTeacher(actor Actor, action string) error {
	if actor.Role != RoleTeacher || !a.IsBoundTeacher(actor.ID) {
		return &AuthorizationError{Action: action, Role: actor.Role}
	}
	return nil
}

func (a *ExamAssignment) transition(actor Actor, to Status) {
	from := a.status
	a.status = to
	a.Touch()
	a.AddDomainEvent(NewStatusChanged(a, from, to, actor))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RehydrateExamAssignment recreates an assignment from persisted state.
func RehydrateExamAssignment(
	id uuid.UUID,
	disciplineID uuid.UUID,
	studentGroup string,
	examType ExamType,
	mainTeacherID, secondTeacherID uuid.UUID,
	roomID uuid.UUID,
	proposedDate *time.Time,
	proposedHour int,
	durationMins int,
	alternateDate *time.Time,
	alternateHour int,
	status Status,
	version int,
	createdAt, updatedAt time.Time,
) *ExamAssignment {
	baseEntity := sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)

	return &ExamAssignment{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(baseEntity, version),
		disciplineID:      disciplineID,
		studentGroup:      studentGroup,
		examType:          examType,
		mainTeacherID:     mainTeacherID,
		secondTeacherID:   secondTeacherID,
		roomID:            roomID,
		proposedDate:      proposedDate,
		proposedHour:      proposedHour,
		durationMins:      durationMins,
		alternateDate:     alternateDate,
		alternateHour:     alternateHour,
		status:            status,
	}
}
