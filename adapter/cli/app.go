package cli

import (
	"fmt"

	schedCommands "github.com/fiesc/examsched/internal/scheduling/application/commands"
	schedQueries "github.com/fiesc/examsched/internal/scheduling/application/queries"
	schedSQLite "github.com/fiesc/examsched/internal/scheduling/infrastructure/persistence/sqlite"
	"github.com/google/uuid"
)

// App holds the CLI application dependencies.
type App struct {
	// Assignment Command Handlers
	CreateAssignmentHandler *schedCommands.CreateAssignmentHandler
	ProposeDateHandler      *schedCommands.ProposeDateHandler
	ReviewProposalHandler   *schedCommands.ReviewProposalHandler
	ResolveAlternateHandler *schedCommands.ResolveAlternateHandler
	ConfirmHandler          *schedCommands.ConfirmAssignmentHandler
	CancelHandler           *schedCommands.CancelAssignmentHandler
	AssignRoomHandler       *schedCommands.AssignRoomHandler

	// Period Command Handlers
	CreatePeriodHandler    *schedCommands.CreatePeriodHandler
	SetPeriodActiveHandler *schedCommands.SetPeriodActiveHandler

	// Query Handlers
	ListAssignmentsHandler *schedQueries.ListAssignmentsHandler
	GetAssignmentHandler   *schedQueries.GetAssignmentHandler
	ListPeriodsHandler     *schedQueries.ListPeriodsHandler

	// LocalDirectory is only set in local mode, where the CLI also
	// maintains the teacher, room, and discipline registers.
	LocalDirectory *schedSQLite.Directory

	// Default actor identity (configured per environment)
	ActorID    uuid.UUID
	ActorRole  string
	ActorGroup string
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	createAssignmentHandler *schedCommands.CreateAssignmentHandler,
	proposeDateHandler *schedCommands.ProposeDateHandler,
	reviewProposalHandler *schedCommands.ReviewProposalHandler,
	resolveAlternateHandler *schedCommands.ResolveAlternateHandler,
	confirmHandler *schedCommands.ConfirmAssignmentHandler,
	cancelHandler *schedCommands.CancelAssignmentHandler,
	assignRoomHandler *schedCommands.AssignRoomHandler,
	createPeriodHandler *schedCommands.CreatePeriodHandler,
	setPeriodActiveHandler *schedCommands.SetPeriodActiveHandler,
	listAssignmentsHandler *schedQueries.ListAssignmentsHandler,
	getAssignmentHandler *schedQueries.GetAssignmentHandler,
	listPeriodsHandler *schedQueries.ListPeriodsHandler,
) *App {
	return &App{
		CreateAssignmentHandler: createAssignmentHandler,
		ProposeDateHandler:      proposeDateHandler,
		ReviewProposalHandler:   reviewProposalHandler,
		ResolveAlternateHandler: resolveAlternateHandler,
		ConfirmHandler:          confirmHandler,
		CancelHandler:           cancelHandler,
		AssignRoomHandler:       assignRoomHandler,
		CreatePeriodHandler:     createPeriodHandler,
		SetPeriodActiveHandler:  setPeriodActiveHandler,
		ListAssignmentsHandler:  listAssignmentsHandler,
		GetAssignmentHandler:    getAssignmentHandler,
		ListPeriodsHandler:      listPeriodsHandler,
	}
}

// SetActor updates the default actor identity.
func (a *App) SetActor(id uuid.UUID, role, group string) {
	a.ActorID = id
	a.ActorRole = role
	a.ActorGroup = group
}

// SetLocalDirectory updates the local directory register.
func (a *App) SetLocalDirectory(dir *schedSQLite.Directory) {
	a.LocalDirectory = dir
}

// Identity resolves who the current command acts as. The --actor,
// --role, and --group flags override the configured defaults.
func (a *App) Identity() (uuid.UUID, string, string, error) {
	id := a.ActorID
	if actorFlag != "" {
		parsed, err := uuid.Parse(actorFlag)
		if err != nil {
			return uuid.Nil, "", "", fmt.Errorf("invalid --actor ID: %w", err)
		}
		id = parsed
	}

	role := a.ActorRole
	if roleFlag != "" {
		role = roleFlag
	}

	group := a.ActorGroup
	if groupFlag != "" {
		group = groupFlag
	}

	if id == uuid.Nil {
		return uuid.Nil, "", "", fmt.Errorf("no actor configured: set EXAMSCHED_ACTOR_ID or pass --actor")
	}
	if role == "" {
		return uuid.Nil, "", "", fmt.Errorf("no role configured: set EXAMSCHED_ACTOR_ROLE or pass --role")
	}

	return id, role, group, nil
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
