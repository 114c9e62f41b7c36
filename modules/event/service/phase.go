package service

import (
	"fmt"

	"rite-api/modules/event/entity"
)

// Action is an organizer-triggered lifecycle operation.
type Action string

const (
	ActionPublishEvent  Action = "PUBLISH_EVENT"
	ActionFinalizeEvent Action = "FINALIZE_EVENT"
	ActionStartEventDay Action = "START_EVENT_DAY"
	ActionCompleteEvent Action = "COMPLETE_EVENT"
	ActionCancelEvent   Action = "CANCEL_EVENT"
)

// Capabilities is a snapshot of the event's derived state. It is computed
// from direct queries, never from the denormalized submission reference on
// timeslot rows.
type Capabilities struct {
	HasTimeslots      bool
	HasAllSubmissions bool
	EventDayReached   bool
}

type edge struct {
	From entity.EventPhase
	To   entity.EventPhase
}

// transitionTable holds every legal forward edge. CANCEL_EVENT is handled
// separately since it leaves any non-terminal phase.
var transitionTable = map[edge]Action{
	{entity.PhaseDraft, entity.PhasePlanning}:     ActionPublishEvent,
	{entity.PhasePlanning, entity.PhaseFinalized}: ActionFinalizeEvent,
	{entity.PhaseFinalized, entity.PhaseDayOf}:    ActionStartEventDay,
	{entity.PhaseDayOf, entity.PhaseCompleted}:    ActionCompleteEvent,
}

// actionOrder fixes the iteration order for GetAvailableActions so identical
// inputs always produce identical output.
var actionOrder = []Action{
	ActionPublishEvent,
	ActionFinalizeEvent,
	ActionStartEventDay,
	ActionCompleteEvent,
	ActionCancelEvent,
}

var confirmations = map[Action]string{
	ActionPublishEvent:  "Publish this event and start collecting DJ submissions?",
	ActionFinalizeEvent: "Finalize the lineup? Timeslots can no longer be changed freely.",
	ActionStartEventDay: "Start event day mode?",
	ActionCompleteEvent: "Mark this event as completed?",
	ActionCancelEvent:   "Cancel this event? This cannot be undone.",
}

var actionSources = map[Action]entity.EventPhase{
	ActionPublishEvent:  entity.PhaseDraft,
	ActionFinalizeEvent: entity.PhasePlanning,
	ActionStartEventDay: entity.PhaseFinalized,
	ActionCompleteEvent: entity.PhaseDayOf,
}

var actionTargets = map[Action]entity.EventPhase{
	ActionPublishEvent:  entity.PhasePlanning,
	ActionFinalizeEvent: entity.PhaseFinalized,
	ActionStartEventDay: entity.PhaseDayOf,
	ActionCompleteEvent: entity.PhaseCompleted,
	ActionCancelEvent:   entity.PhaseCancelled,
}

// actionForTransition maps a requested (from, to) pair onto its action.
// Returns false when the pair is not a listed edge.
func actionForTransition(from, to entity.EventPhase) (Action, bool) {
	if to == entity.PhaseCancelled {
		if from.IsTerminal() {
			return "", false
		}
		return ActionCancelEvent, true
	}
	a, ok := transitionTable[edge{from, to}]
	return a, ok
}

// checkPrecondition evaluates an action's gate against the capabilities
// snapshot. The empty string means the gate is satisfied.
func checkPrecondition(a Action, caps Capabilities) string {
	switch a {
	case ActionPublishEvent:
		if !caps.HasTimeslots {
			return "event needs at least one timeslot"
		}
	case ActionFinalizeEvent:
		if !caps.HasAllSubmissions {
			return "every timeslot needs a submission with promo materials and a guest list"
		}
	case ActionStartEventDay:
		if !caps.EventDayReached {
			return "event date has not been reached"
		}
	}
	return ""
}

// AvailableAction is one currently-satisfiable lifecycle action, with the
// message the UI shows before executing it.
type AvailableAction struct {
	Action       Action
	TargetPhase  entity.EventPhase
	Confirmation string
}

// GetAvailableActions derives the actions whose edges leave the given phase
// and whose preconditions hold under the given capabilities. Pure function:
// no storage, no clock, no hidden state.
func GetAvailableActions(phase entity.EventPhase, caps Capabilities) []AvailableAction {
	actions := make([]AvailableAction, 0, len(actionOrder))
	for _, a := range actionOrder {
		if a == ActionCancelEvent {
			if phase.IsTerminal() {
				continue
			}
		} else if actionSources[a] != phase {
			continue
		}
		if checkPrecondition(a, caps) != "" {
			continue
		}
		actions = append(actions, AvailableAction{
			Action:       a,
			TargetPhase:  actionTargets[a],
			Confirmation: confirmations[a],
		})
	}
	return actions
}

// describeEdge is used in invalid-transition error details.
func describeEdge(from, to entity.EventPhase) string {
	return fmt.Sprintf("%s -> %s", from, to)
}
