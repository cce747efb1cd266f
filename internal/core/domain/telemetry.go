package domain

// Span attribute keys recorded for every task invocation.
const (
	// AttrTaskID carries the task's definition name.
	AttrTaskID = "smelt.task.id"
	// AttrPublicName carries the task's public name, if any.
	AttrPublicName = "smelt.task.public_name"
	// AttrCached is true when the invocation skipped its actions.
	AttrCached = "smelt.cached"
	// AttrState carries the final InvocationState.
	AttrState = "smelt.state"
	// AttrSignature carries the committed signature.
	AttrSignature = "smelt.signature"
	// AttrSources carries the number of declared sources.
	AttrSources = "smelt.sources"
)

// Progress markers printed around task invocations.
const (
	MarkerGoal = "[GOAL]"
	MarkerSkip = "[SKIP]"
	MarkerExec = "[EXEC]"
)
