// Package notify provides change notification for parameter updates.
//
// Observers subscribe to the engine and receive a callback after a
// parameter value is written. Delivery is synchronous and the notifier
// performs no locking: like the rest of the engine it runs inside one
// cooperative request loop.
package notify

// ChangeType represents the type of parameter change.
type ChangeType int

const (
	// ChangeSet indicates a single parameter value was written.
	ChangeSet ChangeType = iota

	// ChangeReload indicates the whole parameter set was reloaded
	// (cold start replay or defaults reset).
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change is one parameter change event.
type Change struct {
	// Type is the type of change.
	Type ChangeType

	// Index is the table index of the changed parameter, or -1 for
	// reload events.
	Index int

	// Token is the full token of the changed parameter.
	Token string

	// Value is the new value in canonical units.
	Value float64
}

// Observer is called when a parameter changes.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages parameter change subscriptions.
type Notifier struct {
	observers map[uint64]Observer
	nextID    uint64
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{observers: make(map[uint64]Observer)}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	id := n.nextID
	n.nextID++
	n.observers[id] = observer
	return &Subscription{id: id, notifier: n}
}

// Notify delivers a change to every observer.
func (n *Notifier) Notify(change Change) {
	for _, obs := range n.observers {
		obs(change)
	}
}

// NotifySet is a convenience for single-value writes.
func (n *Notifier) NotifySet(index int, token string, value float64) {
	n.Notify(Change{Type: ChangeSet, Index: index, Token: token, Value: value})
}

// NotifyReload signals that the whole parameter set was reloaded.
func (n *Notifier) NotifyReload() {
	n.Notify(Change{Type: ChangeReload, Index: -1})
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	return len(n.observers)
}

func (n *Notifier) unsubscribe(id uint64) {
	delete(n.observers, id)
}
