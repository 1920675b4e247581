package task

import "fmt"

// ID identifies a task. Only 1, 2 and 3 are known.
type ID int

const (
	Task1 ID = 1
	Task2 ID = 2
	Task3 ID = 3
)

// IDs lists the known tasks in order.
var IDs = []ID{Task1, Task2, Task3}

// Known reports whether id names one of the three tasks.
func (id ID) Known() bool { return id >= Task1 && id <= Task3 }

// Kind returns the parameter kind task id accepts.
func (id ID) Kind() (Kind, bool) {
	switch id {
	case Task1:
		return KindInt, true
	case Task2:
		return KindFloat, true
	case Task3:
		return KindString, true
	}
	return "", false
}

// Record is the text of one lifecycle event, exactly as stored in the log.
type Record string

func (r Record) String() string { return string(r) }

// Line returns the record framed for the stream.
func (r Record) Line() []byte { return []byte(string(r) + "\n") }

// StartedRecord formats a start event.
func StartedRecord(id ID, p Param, pauseMs int) Record {
	if !id.Known() || p == nil {
		return "Unknown task started"
	}
	return Record(fmt.Sprintf("Task %d started with %s parameter: %s, pause duration: %d ms", id, p.Kind(), p, pauseMs))
}

// StoppedRecord formats a stop event.
func StoppedRecord(id ID) Record {
	if !id.Known() {
		return "Unknown task stopped"
	}
	return Record(fmt.Sprintf("Task %d stopped", id))
}
