package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

type (
	// Scenario is a scripted sequence of messages and block advances run
	// against a fresh engine.
	Scenario struct {
		Genesis *GenesisDoc `json:"genesis,omitempty"`
		Steps   []Step      `json:"steps"`
	}

	// Step either delivers Msg in the current block or, when AdvanceTo is set,
	// executes every block up to and including AdvanceTo.
	Step struct {
		AdvanceTo uint64               `json:"advance_to,omitempty"`
		Msg       *timedtypes.Envelope `json:"msg,omitempty"`
		// ExpectError is a substring of the error the message must fail with.
		ExpectError string `json:"expect_error,omitempty"`
		// ExpectEvents lists event types the step must emit.
		ExpectEvents []string `json:"expect_events,omitempty"`
	}

	// StepResult reports what a step did.
	StepResult struct {
		Step   int     `json:"step"`
		Height uint64  `json:"height"`
		Events []Event `json:"events,omitempty"`
		Error  string  `json:"error,omitempty"`
	}
)

// ReadScenario reads a scenario from path.
func ReadScenario(path string) (*Scenario, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Scenario
	if err := json.Unmarshal(bz, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}

	return &s, nil
}

// Validate checks that every step does exactly one thing.
func (s Scenario) Validate() error {
	for i, step := range s.Steps {
		switch {
		case step.AdvanceTo != 0 && step.Msg != nil:
			return fmt.Errorf("step %d: cannot both advance and deliver a message", i)
		case step.AdvanceTo == 0 && step.Msg == nil:
			return fmt.Errorf("step %d: nothing to do", i)
		case step.AdvanceTo != 0 && step.ExpectError != "":
			return fmt.Errorf("step %d: block advances cannot fail", i)
		}
	}

	return nil
}

// RunScenario executes s on e. It stops at the first step whose outcome
// differs from the expected one and checks every invariant after each step.
func RunScenario(e *Engine, s Scenario) ([]StepResult, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	if s.Genesis != nil {
		if err := e.InitGenesis(s.Genesis); err != nil {
			return nil, err
		}
	}

	results := make([]StepResult, 0, len(s.Steps))
	for i, step := range s.Steps {
		res, err := runStep(e, i, step)
		if res != nil {
			results = append(results, *res)
		}
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i, err)
		}

		if err := e.CheckInvariants(); err != nil {
			return results, fmt.Errorf("step %d: %w", i, err)
		}
	}

	return results, nil
}

func runStep(e *Engine, i int, step Step) (*StepResult, error) {
	res := &StepResult{Step: i}

	if step.AdvanceTo != 0 {
		for h := e.Height(); h < step.AdvanceTo; h = e.Height() {
			_, events, err := e.NextBlock()
			if err != nil {
				return nil, err
			}
			res.Events = append(res.Events, events...)
		}
		res.Height = e.Height()

		return res, expectEvents(res.Events, step.ExpectEvents)
	}

	tx, err := e.DeliverEnvelope(*step.Msg)
	switch {
	case err != nil && step.ExpectError == "":
		return nil, err
	case err != nil:
		res.Height = e.Height()
		res.Error = err.Error()
		if !strings.Contains(res.Error, step.ExpectError) {
			return res, fmt.Errorf("expected error %q, got %q", step.ExpectError, res.Error)
		}
		return res, nil
	case step.ExpectError != "":
		return nil, fmt.Errorf("expected error %q, got none", step.ExpectError)
	}

	res.Height = tx.Height
	res.Events = tx.Events

	return res, expectEvents(res.Events, step.ExpectEvents)
}

func expectEvents(events []Event, types []string) error {
	for _, t := range types {
		found := false
		for _, e := range events {
			if e.Type == t {
				found = true
				break
			}
		}

		if !found {
			return fmt.Errorf("expected event %q", t)
		}
	}

	return nil
}
