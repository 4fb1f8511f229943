package camera

import "github.com/Carmen-Shannon/oxy-pitch/common"

// notifier fans controller notifications out to subscribers.
type notifier struct {
	sets [3]common.ListenerSet[ControlEvent]
}

func (n *notifier) add(t ControlEventType, fn func(ControlEvent)) common.ListenerID {
	if t < ControlEventStart || t > ControlEventEnd {
		return 0
	}
	return n.sets[t].Add(fn)
}

func (n *notifier) remove(t ControlEventType, id common.ListenerID) {
	if t < ControlEventStart || t > ControlEventEnd {
		return
	}
	n.sets[t].Remove(id)
}

func (n *notifier) emit(t ControlEventType, state GestureState) {
	n.sets[t].Emit(ControlEvent{Type: t, State: state})
}
