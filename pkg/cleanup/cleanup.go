// Package cleanup collects teardown jobs registered while the process
// wires itself up (connection pools and the like) and runs them on exit.
package cleanup

import "log"

// Job is one named teardown step. The name only shows up in shutdown logs.
type Job struct {
	Name string
	F    func() error
}

var jobs []*Job

// Register queues a job. Jobs run in registration order.
func Register(j *Job) {
	jobs = append(jobs, j)
}

// CleanUp runs every registered job. A failing job is logged and does not
// stop the remaining ones.
func CleanUp() {
	for _, j := range jobs {
		log.Printf("cleanup job %q started", j.Name)
		if err := j.F(); err != nil {
			log.Printf("cleanup job %q finished with error: %v", j.Name, err)
			continue
		}
		log.Printf("cleanup job %q finished", j.Name)
	}
}
