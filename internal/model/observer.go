package model

import "log/slog"

// Observer receives synchronous change notifications from a subject.
// Conformance is explicit: listeners implement this interface rather
// than being matched by method name at runtime.
type Observer interface {
	// SubjectChanged is invoked after a mutation has been applied,
	// receiving the subject that changed (*Project or *DataSource).
	SubjectChanged(subject any)
}

// observable implements the subject role shared by Project and
// DataSource. Observers are notified synchronously in registration
// order. A panic in one observer is recovered and logged so that later
// observers are still notified; it is never re-raised to the mutator.
type observable struct {
	observers []Observer
}

// AddObserver registers a listener. Registering the same observer twice
// is idempotent. A nil observer fails with ErrInvalidObserver.
func (o *observable) AddObserver(obs Observer) error {
	if obs == nil {
		return ErrInvalidObserver
	}
	for _, existing := range o.observers {
		if existing == obs {
			return nil
		}
	}
	o.observers = append(o.observers, obs)
	return nil
}

// RemoveObserver deregisters a listener. Removing an observer that was
// never registered is a no-op.
func (o *observable) RemoveObserver(obs Observer) {
	for i, existing := range o.observers {
		if existing == obs {
			o.observers = append(o.observers[:i], o.observers[i+1:]...)
			return
		}
	}
}

// ObserverCount returns the number of registered observers.
func (o *observable) ObserverCount() int { return len(o.observers) }

func (o *observable) notifyObservers(subject any) {
	for _, obs := range o.observers {
		notifyOne(obs, subject)
	}
}

func notifyOne(obs Observer, subject any) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("observer panicked during notification", "panic", r)
		}
	}()
	obs.SubjectChanged(subject)
}
