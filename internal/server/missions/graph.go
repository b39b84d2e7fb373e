// Package missions turns a mission document into a scenario graph and walks
// it with a sequence of choices.
package missions

import (
	"fmt"

	"github.com/dmitrijs2005/cosmospt/internal/common"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
)

// Mission run states.
const (
	StatusActive  = "active"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Graph maps scenario ids to scenarios. The first scenario is the entry
// point.
type Graph struct {
	mission   models.Mission
	scenarios map[string]*models.Scenario
	start     string
}

// NewGraph validates m: at least one scenario, unique scenario ids, known
// outcomes and every nextScenario resolving to a scenario.
func NewGraph(m models.Mission) (*Graph, error) {
	if len(m.Scenarios) == 0 {
		return nil, fmt.Errorf("%w: mission %q has no scenarios", common.ErrorValidation, m.ID)
	}

	g := &Graph{
		mission:   m,
		scenarios: make(map[string]*models.Scenario, len(m.Scenarios)),
		start:     m.Scenarios[0].ID,
	}
	for i := range m.Scenarios {
		s := &m.Scenarios[i]
		if _, dup := g.scenarios[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate scenario %q", common.ErrorValidation, s.ID)
		}
		g.scenarios[s.ID] = s
	}

	for _, s := range m.Scenarios {
		if len(s.Options) == 0 {
			return nil, fmt.Errorf("%w: scenario %q has no options", common.ErrorValidation, s.ID)
		}
		for i, o := range s.Options {
			switch o.Outcome {
			case models.OutcomeSuccess, models.OutcomeFailure, models.OutcomeContinue:
			default:
				return nil, fmt.Errorf("%w: scenario %q option %d has unknown outcome %q", common.ErrorValidation, s.ID, i, o.Outcome)
			}
			if o.NextScenario != "" {
				if _, ok := g.scenarios[o.NextScenario]; !ok {
					return nil, fmt.Errorf("%w: scenario %q option %d points to unknown scenario %q", common.ErrorValidation, s.ID, i, o.NextScenario)
				}
			}
		}
	}

	return g, nil
}

func (g *Graph) Mission() models.Mission {
	return g.mission
}

// Step records one applied choice.
type Step struct {
	ScenarioID string `json:"scenarioId"`
	Option     int    `json:"option"`
	Text       string `json:"text"`
	Outcome    string `json:"outcome"`
	Points     int    `json:"points"`
	Result     string `json:"result,omitempty"`
}

// Run is the state reached after applying a sequence of choices.
type Run struct {
	Status          string `json:"status"`
	TotalPoints     int    `json:"totalPoints"`
	CurrentScenario string `json:"currentScenario,omitempty"`
	Steps           []Step `json:"results"`
}

// Play starts at the first scenario and applies choices in order, summing
// option points. A success or failure outcome ends the run; choices left
// over after that are an error. A continue option moves to its
// nextScenario, or stays on the current scenario when it has none.
// Running out of choices leaves the run active.
func (g *Graph) Play(choices []int) (*Run, error) {
	run := &Run{Status: StatusActive, CurrentScenario: g.start, Steps: []Step{}}

	for n, choice := range choices {
		if run.Status != StatusActive {
			return nil, fmt.Errorf("%w: choice %d given after the mission ended", common.ErrorValidation, n)
		}

		s := g.scenarios[run.CurrentScenario]
		if choice < 0 || choice >= len(s.Options) {
			return nil, fmt.Errorf("%w: scenario %q has no option %d", common.ErrorValidation, s.ID, choice)
		}
		o := s.Options[choice]

		run.TotalPoints += o.Points
		run.Steps = append(run.Steps, Step{
			ScenarioID: s.ID,
			Option:     choice,
			Text:       o.Text,
			Outcome:    o.Outcome,
			Points:     o.Points,
			Result:     o.Result,
		})

		switch o.Outcome {
		case models.OutcomeSuccess:
			run.Status = StatusSuccess
			run.CurrentScenario = ""
		case models.OutcomeFailure:
			run.Status = StatusFailed
			run.CurrentScenario = ""
		default:
			if o.NextScenario != "" {
				run.CurrentScenario = o.NextScenario
			}
		}
	}

	return run, nil
}

// Award returns the points to credit for a finished run: the total plus
// the completion bonus on success, the total floored at zero on failure,
// and nothing while the run is still active.
func (r *Run) Award() int {
	switch r.Status {
	case StatusSuccess:
		return r.TotalPoints + models.MissionSuccessBonus
	case StatusFailed:
		return max(0, r.TotalPoints)
	default:
		return 0
	}
}
