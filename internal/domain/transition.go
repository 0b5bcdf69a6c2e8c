package domain

// Action is a caller-invokable lifecycle verb.
type Action string

// Lifecycle actions. Completion is not an Action: only an expiring timer
// can complete a task.
const (
	ActionRun    Action = "run"
	ActionPause  Action = "pause"
	ActionResume Action = "resume"
	ActionCancel Action = "cancel"
)

// allowedSources lists the statuses each action may start from.
var allowedSources = map[Action][]TaskStatus{
	ActionRun:    {TaskStatusNotStarted, TaskStatusCancelled},
	ActionPause:  {TaskStatusInProgress},
	ActionResume: {TaskStatusPaused},
	ActionCancel: {TaskStatusInProgress, TaskStatusPaused},
}

// CanTransition reports whether action is legal from status.
func CanTransition(action Action, status TaskStatus) bool {
	for _, s := range allowedSources[action] {
		if s == status {
			return true
		}
	}
	return false
}

// CheckTransition returns a *TransitionError if action is not legal from
// status, nil otherwise.
func CheckTransition(action Action, status TaskStatus) error {
	if !CanTransition(action, status) {
		return NewTransitionError(action, status)
	}
	return nil
}

// Requirement describes which statuses the action accepts.
func (a Action) Requirement() string {
	switch a {
	case ActionRun:
		return "You can only run a task that hasn't started yet or has been cancelled."
	case ActionPause:
		return "You can only pause a running task."
	case ActionResume:
		return "You can only resume a paused task."
	case ActionCancel:
		return "You can only cancel a running or paused task."
	default:
		return "This action is not supported."
	}
}
