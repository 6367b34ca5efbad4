package engine

import "github.com/iuliansilitra/TrueMapper/worker"

// runTasks fans the tasks out over a short-lived pool sized by the
// mapper's worker count.
func runTasks(workers int, tasks []func()) {
	wt := make([]worker.Task, len(tasks))
	for i, t := range tasks {
		wt[i] = t
	}
	worker.Run(workers, wt)
}
