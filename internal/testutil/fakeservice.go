// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"todoview/internal/service"
)

// ErrNotFound is returned when a task is not found.
var ErrNotFound = errors.New("not found")

// DetailError is an error carrying a server-style detail message.
type DetailError struct{ Msg string }

func (e *DetailError) Error() string  { return e.Msg }
func (e *DetailError) Detail() string { return e.Msg }

// Call names recorded by FakeService.
const (
	CallListTasks  = "ListTasks"
	CallStatistics = "Statistics"
	CallCreateTask = "CreateTask"
	CallToggleTask = "ToggleTask"
	CallDeleteTask = "DeleteTask"
)

// FakeService is an in-memory implementation of service.Service for testing.
// It records every call in order.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int
	calls  []string

	// Now stamps created tasks. Defaults to a fixed date.
	Now func() time.Time

	// Error injection for testing
	ListTasksErr  error
	StatisticsErr error
	CreateTaskErr error
	ToggleTaskErr error
	DeleteTaskErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		Now: func() time.Time {
			return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		},
	}
}

// AddTask adds a task and returns its ID.
func (f *FakeService) AddTask(title, description string, completed bool) service.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.add(title, description, completed).ID
}

func (f *FakeService) add(title, description string, completed bool) service.Task {
	t := service.Task{
		ID:          service.ID(strconv.Itoa(f.nextID)),
		Title:       title,
		Description: description,
		Completed:   completed,
		CreatedAt:   f.Now(),
	}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t
}

// Calls returns the recorded call names in order.
func (f *FakeService) Calls() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.calls...)
}

// ResetCalls clears the call record.
func (f *FakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Task(nil), f.tasks...)
}

func (f *FakeService) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.record(CallListTasks)
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// Statistics implements service.Service.
func (f *FakeService) Statistics(ctx context.Context) (service.Statistics, error) {
	f.record(CallStatistics)
	if f.StatisticsErr != nil {
		return service.Statistics{}, f.StatisticsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	var s service.Statistics
	for _, t := range f.tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		} else {
			s.Incomplete++
		}
	}
	return s, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, t service.NewTask) (service.Task, error) {
	f.record(CallCreateTask)
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.add(t.Title, t.Description, t.Completed), nil
}

// ToggleTask implements service.Service.
func (f *FakeService) ToggleTask(ctx context.Context, id service.ID) (service.Task, error) {
	f.record(CallToggleTask)
	if f.ToggleTaskErr != nil {
		return service.Task{}, f.ToggleTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Completed = !t.Completed
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id service.ID) error {
	f.record(CallDeleteTask)
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
