package services

import (
	"context"
	"fmt"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// ProgressStore is a goal repository that can also add progress in place.
type ProgressStore interface {
	storage.GoalRepository
	AddProgress(ctx context.Context, id string, amount core.Money) (core.Goal, error)
}

// GoalView is a goal with its computed progress percentage.
type GoalView struct {
	core.Goal
	Progress float64 `json:"progress"`
}

func viewOf(g core.Goal) GoalView {
	return GoalView{Goal: g, Progress: g.Progress()}
}

// GoalService manages ownerless savings goals.
type GoalService struct {
	goals     ProgressStore
	publisher EventPublisher
}

func NewGoalService(goals ProgressStore, publisher EventPublisher) *GoalService {
	return &GoalService{goals: goals, publisher: publisher}
}

func (s *GoalService) List(ctx context.Context) ([]GoalView, error) {
	goals, err := s.goals.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	out := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		out = append(out, viewOf(g))
	}
	return out, nil
}

func (s *GoalService) Create(ctx context.Context, g core.Goal) (GoalView, error) {
	g.ID = ""
	g.ApplyDefaults()
	if err := g.Validate(); err != nil {
		return GoalView{}, err
	}
	created, err := s.goals.Create(ctx, g)
	if err != nil {
		return GoalView{}, fmt.Errorf("save goal: %w", err)
	}
	publishEvent(ctx, s.publisher, amqp.KindGoal, amqp.ActionCreated, created.ID, "", created.Title, created.TargetAmount)
	return viewOf(created), nil
}

// Update replaces the goal's fields. With keepProgress the stored saved
// amount is carried over instead of g.CurrentAmount.
func (s *GoalService) Update(ctx context.Context, id string, g core.Goal, keepProgress bool) (GoalView, error) {
	if keepProgress {
		prev, err := s.goals.Get(ctx, "", id)
		if err != nil {
			return GoalView{}, err
		}
		g.CurrentAmount = prev.CurrentAmount
	}
	g.ApplyDefaults()
	if err := g.Validate(); err != nil {
		return GoalView{}, err
	}
	updated, err := s.goals.Update(ctx, "", id, g)
	if err != nil {
		return GoalView{}, err
	}
	publishEvent(ctx, s.publisher, amqp.KindGoal, amqp.ActionUpdated, id, "", updated.Title, updated.TargetAmount)
	return viewOf(updated), nil
}

func (s *GoalService) Delete(ctx context.Context, id string) error {
	if err := s.goals.Delete(ctx, "", id); err != nil {
		return err
	}
	publishEvent(ctx, s.publisher, amqp.KindGoal, amqp.ActionDeleted, id, "", "", core.Money{})
	return nil
}

// AddProgress adds amount to the goal's saved total.
func (s *GoalService) AddProgress(ctx context.Context, id string, amount core.Money) (GoalView, error) {
	g, err := s.goals.AddProgress(ctx, id, amount)
	if err != nil {
		return GoalView{}, err
	}
	publishEvent(ctx, s.publisher, amqp.KindGoal, amqp.ActionUpdated, id, "", g.Title, g.CurrentAmount)
	return viewOf(g), nil
}
