// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package module

// MaxTasksPerModule bounds the fixed-length task slot array every module
// carries (spec §3, §6).
const MaxTasksPerModule = 4

// TaskID identifies a task slot on a module (spec §4.5). It is the slot
// index itself — see DESIGN.md's Open Question #1 for why this repo pins
// ids to slots rather than adding a generation counter.
type TaskID int

// InvalidTaskID is returned when a task slot can't be allocated.
const InvalidTaskID TaskID = -1

// Task is an opaque handle to scheduler-owned work bound to a module (spec
// §3 "Task"). The graph runtime never looks inside it.
type Task interface {
	// Destroy releases the task. Called by DestroyModule during teardown.
	Destroy()
}

// TaskScheduler is the external collaborator that actually creates tasks
// (spec §1 non-goal a: "The scheduler loop ... is an external
// collaborator"). RegisterTask never assumes anything about how a
// TaskScheduler runs a Task once created.
type TaskScheduler interface {
	CreateTask(m *Module, arg interface{}) (Task, error)
}

// RegisterTask finds module m's first empty task slot and asks sched to
// create a task bound to (m, arg). Returns InvalidTaskID if m's class has
// no RunTask hook, no slot is free, or task creation fails (spec §4.5).
func RegisterTask(sched TaskScheduler, m *Module, arg interface{}) TaskID {
	if !m.class.CanRunTasks() {
		return InvalidTaskID
	}

	for i := 0; i < MaxTasksPerModule; i++ {
		if m.tasks[i] != nil {
			continue
		}

		t, err := sched.CreateTask(m, arg)
		if err != nil || t == nil {
			return InvalidTaskID
		}

		m.tasks[i] = t
		return TaskID(i)
	}

	return InvalidTaskID
}

// TaskToTID finds the slot index of t on m via linear scan, matching the
// BESS C implementation's task_to_tid exactly.
func TaskToTID(m *Module, t Task) TaskID {
	for i := 0; i < MaxTasksPerModule; i++ {
		if m.tasks[i] == t {
			return TaskID(i)
		}
	}
	return InvalidTaskID
}

// NumModuleTasks counts m's occupied task slots.
func NumModuleTasks(m *Module) int {
	n := 0
	for _, t := range m.tasks {
		if t != nil {
			n++
		}
	}
	return n
}

// Task returns the task in slot id, or nil if the slot is empty or id is
// out of range.
func (m *Module) Task(id TaskID) Task {
	if id < 0 || int(id) >= MaxTasksPerModule {
		return nil
	}
	return m.tasks[id]
}

func destroyAllTasks(m *Module) {
	for i := range m.tasks {
		if m.tasks[i] != nil {
			m.tasks[i].Destroy()
			m.tasks[i] = nil
		}
	}
}
