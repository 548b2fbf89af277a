package reviews

import "github.com/voidstudios/voidbot/models"

// ActionKind enumerates everything the ticket owner can do inside a review
// flow instance.
type ActionKind int

const (
	// ActionRated is one of the five rating buttons.
	ActionRated ActionKind = iota
	// ActionSkipped dismisses the review request entirely.
	ActionSkipped
	// ActionCommentRequested asks for the comment entry form.
	ActionCommentRequested
	// ActionNoComment submits the review without a comment.
	ActionNoComment
	// ActionCommentSubmitted submits the review with the entered comment.
	ActionCommentSubmitted
)

type Action struct {
	Kind    ActionKind
	Rating  int
	Comment string
}

// StepKind tells the caller what to render after an action was processed.
type StepKind int

const (
	// StepExpired: the flow instance no longer exists or timed out.
	StepExpired StepKind = iota
	// StepPromptComment: rating recorded, ask about a comment.
	StepPromptComment
	// StepOpenCommentModal: open the free-text comment form.
	StepOpenCommentModal
	// StepSkipped: request dismissed, nothing recorded.
	StepSkipped
	// StepDone: review committed.
	StepDone
)

type StepResult struct {
	Kind   StepKind
	Rating int
	// Review is set on StepDone.
	Review *models.Review
}
