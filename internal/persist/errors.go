package persist

import "fmt"

// Step identifies one ordered phase of the engine
type Step string

const (
	StepProducts Step = "products"
	StepVariants Step = "variants"
	StepHistory  Step = "history"
	StepTags     Step = "tags"
	StepOptions  Step = "options"
	StepSpecs    Step = "specs"
	StepLinks    Step = "links"
)

// StepError reports which persist step failed for the current batch. It is
// fatal for the run: no rollback of earlier steps is attempted, the next
// scheduled run retries from a clean slate through idempotent upserts.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("persist step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
