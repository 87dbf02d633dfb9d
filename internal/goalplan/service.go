package goalplan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finpulse-dev/finpulse/internal/model"
)

// FileName is the goal list inside a workspace.
const FileName = "goals.yaml"

// goalsFile is the on-disk shape of goals.yaml.
type goalsFile struct {
	Goals []model.Goal `yaml:"goals"`
}

// Service provides in-memory lookup over the workspace's goals.
type Service struct {
	goals []model.Goal
	byID  map[string]model.Goal
}

// NewService creates a Service from a slice of goals.
func NewService(goals []model.Goal) *Service {
	byID := make(map[string]model.Goal, len(goals))
	for _, g := range goals {
		byID[g.ID] = g
	}
	return &Service{goals: goals, byID: byID}
}

// Load reads goals.yaml from a workspace root. A missing file is an
// empty goal list, not an error. Loaded goals are validated.
func Load(root string) (*Service, error) {
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewService(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading goals: %w", err)
	}

	var file goalsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing goals: %w", err)
	}

	if verrs := ValidateGoals(file.Goals); len(verrs) > 0 {
		return nil, fmt.Errorf("invalid goals file: %s", joinErrors(verrs))
	}
	return NewService(file.Goals), nil
}

// Save writes the goal list to goals.yaml under the workspace root.
func (s *Service) Save(root string) error {
	data, err := yaml.Marshal(goalsFile{Goals: s.goals})
	if err != nil {
		return fmt.Errorf("marshaling goals: %w", err)
	}
	if err := os.WriteFile(filepath.Join(root, FileName), data, 0o644); err != nil {
		return fmt.Errorf("writing goals: %w", err)
	}
	return nil
}

// All returns all goals.
func (s *Service) All() []model.Goal {
	return s.goals
}

// Get returns a goal by ID.
func (s *Service) Get(id string) (model.Goal, bool) {
	g, ok := s.byID[id]
	return g, ok
}

// Active returns the goals still being funded.
func (s *Service) Active() []model.Goal {
	var result []model.Goal
	for _, g := range s.goals {
		if g.Status == model.GoalActive {
			result = append(result, g)
		}
	}
	return result
}

// AppendParams holds parameters for creating a goal.
type AppendParams struct {
	Title               string
	Category            string
	Priority            model.GoalPriority // defaults to medium
	TargetAmount        decimal.Decimal
	CurrentAmount       decimal.Decimal
	Deadline            *time.Time
	MonthlyContribution decimal.Decimal
	Notes               string
}

// Append validates and adds a new active goal, minting its ID. The
// caller persists with Save.
func (s *Service) Append(params AppendParams) (string, error) {
	priority := params.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	goal := model.Goal{
		ID:                  uuid.NewString(),
		Title:               params.Title,
		Category:            params.Category,
		Status:              model.GoalActive,
		Priority:            priority,
		TargetAmount:        params.TargetAmount,
		CurrentAmount:       params.CurrentAmount,
		Deadline:            params.Deadline,
		MonthlyContribution: params.MonthlyContribution,
		Notes:               params.Notes,
	}

	all := append(append([]model.Goal{}, s.goals...), goal)
	if verrs := ValidateGoals(all); len(verrs) > 0 {
		return "", fmt.Errorf("validation failed: %s", joinErrors(verrs))
	}

	s.goals = all
	s.byID[goal.ID] = goal
	return goal.ID, nil
}

func joinErrors(verrs []ValidationError) string {
	msgs := make([]string, len(verrs))
	for i, ve := range verrs {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}
