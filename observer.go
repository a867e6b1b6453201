package crosslight

import "fmt"

// Update is what observers receive after an approach publishes
type Update struct {
	// ID is unique per publish
	ID string
	// ApproachID identifies the approach instance that published
	ApproachID string
	State      LightState
	Status     Status
}

// Observer represents an entity that observes approach changes
type Observer interface {
	// OnModeChange is called after CycleMode moves to a new mode
	OnModeChange(status Status, from, to Mode)

	// OnPublish is called after the state was handed to the host sink
	OnPublish(update Update)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnToggle is called for every signal head a toggle flipped
	OnToggle(status Status, group Group, from, to Light)

	// OnToggleIgnored is called when a toggle had no effect
	OnToggleIgnored(status Status, group Group, reason string)

	// OnError is called when an observer panicked
	OnError(err error)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnModeChange implements the required Observer method
func (o *BaseObserver) OnModeChange(status Status, from, to Mode) {}

// OnPublish implements the required Observer method
func (o *BaseObserver) OnPublish(update Update) {}

// OnToggle implements the optional ExtendedObserver method
func (o *BaseObserver) OnToggle(status Status, group Group, from, to Light) {}

// OnToggleIgnored implements the optional ExtendedObserver method
func (o *BaseObserver) OnToggleIgnored(status Status, group Group, reason string) {}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(err error) {}

// ObserverManager manages a collection of observers. A panicking observer
// never interrupts the mutation that notified it.
type ObserverManager struct {
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered observers
func (om *ObserverManager) Len() int {
	return len(om.observers)
}

func (om *ObserverManager) clone() *ObserverManager {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)
	return &ObserverManager{observers: observers}
}

func (om *ObserverManager) each(hook string, fn func(Observer)) {
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)

	for _, observer := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					if extObs, ok := observer.(ExtendedObserver); ok {
						func() {
							defer func() { recover() }()
							extObs.OnError(fmt.Errorf("observer panic in %s: %v", hook, r))
						}()
					}
				}
			}()
			fn(observer)
		}()
	}
}

// NotifyModeChange notifies all observers of a mode change
func (om *ObserverManager) NotifyModeChange(status Status, from, to Mode) {
	om.each("OnModeChange", func(o Observer) {
		o.OnModeChange(status, from, to)
	})
}

// NotifyPublish notifies all observers of a publish
func (om *ObserverManager) NotifyPublish(update Update) {
	om.each("OnPublish", func(o Observer) {
		o.OnPublish(update)
	})
}

// NotifyToggle notifies extended observers of a flipped signal head
func (om *ObserverManager) NotifyToggle(status Status, group Group, from, to Light) {
	om.each("OnToggle", func(o Observer) {
		if extObs, ok := o.(ExtendedObserver); ok {
			extObs.OnToggle(status, group, from, to)
		}
	})
}

// NotifyToggleIgnored notifies extended observers of a no-op toggle
func (om *ObserverManager) NotifyToggleIgnored(status Status, group Group, reason string) {
	om.each("OnToggleIgnored", func(o Observer) {
		if extObs, ok := o.(ExtendedObserver); ok {
			extObs.OnToggleIgnored(status, group, reason)
		}
	})
}
