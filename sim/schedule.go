package sim

// task 延迟任务，按模拟时间触发
type task struct {
	at  float64
	run func()
}

// schedule 世界持有的延迟任务队列（目前只用于机器人重生）
type schedule struct {
	now   float64
	tasks []task
}

func (q *schedule) after(delay float64, fn func()) {
	q.tasks = append(q.tasks, task{at: q.now + delay, run: fn})
}

// advance 推进时间并执行到期任务；任务内部可以再次调度
func (q *schedule) advance(dt float64) {
	q.now += dt
	var due []task
	kept := q.tasks[:0]
	for _, t := range q.tasks {
		if t.at <= q.now {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	q.tasks = kept
	for _, t := range due {
		t.run()
	}
}

func (q *schedule) cancel() {
	q.tasks = nil
}

func (q *schedule) pending() int { return len(q.tasks) }
