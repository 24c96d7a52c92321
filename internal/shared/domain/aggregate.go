package domain

// AggregateRoot is the consistency boundary of a domain aggregate. Its
// version counter backs optimistic concurrency at the persistence layer:
// every successful mutation is persisted with a compare-and-swap on the
// stored version.
type AggregateRoot interface {
	Entity
	Version() int
	DomainEvents() []DomainEvent
	ClearDomainEvents()
	AddDomainEvent(event DomainEvent)
}

// BaseAggregateRoot provides version tracking and event collection.
type BaseAggregateRoot struct {
	BaseEntity
	domainEvents []DomainEvent
	version      int
}

// NewBaseAggregateRoot creates an aggregate root at version zero.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		domainEvents: make([]DomainEvent, 0),
	}
}

// RehydrateBaseAggregateRoot recreates an aggregate from persisted state.
func RehydrateBaseAggregateRoot(entity BaseEntity, version int) BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   entity,
		domainEvents: make([]DomainEvent, 0),
		version:      version,
	}
}

// Version returns the aggregate version used for stale-write detection.
func (a *BaseAggregateRoot) Version() int { return a.version }

// SetVersion records the version assigned by the store's compare-and-swap
// so a just-saved aggregate reflects its persisted state.
func (a *BaseAggregateRoot) SetVersion(version int) { a.version = version }

// DomainEvents returns all uncommitted domain events.
func (a *BaseAggregateRoot) DomainEvents() []DomainEvent { return a.domainEvents }

// ClearDomainEvents discards the uncommitted events.
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = make([]DomainEvent, 0)
}

// AddDomainEvent records an event to be published after the next save.
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}
