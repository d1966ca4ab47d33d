// Package utils
package utils

import (
	"sync"
)

// OverflowTrigger 计数达到targetValue时调用callback并清零, 用于批量任务的进度输出
type OverflowTrigger struct {
	mu          sync.Mutex
	count       int
	total       int
	targetValue int
	callback    func(total int)
}

func NewOverflowTrigger(targetValue int, callback func(total int)) *OverflowTrigger {
	return &OverflowTrigger{
		targetValue: targetValue,
		callback:    callback,
	}
}

func (trigger *OverflowTrigger) Tick() {
	if trigger.targetValue <= 0 {
		return
	}
	trigger.mu.Lock()
	defer trigger.mu.Unlock()
	trigger.count++
	trigger.total++
	if trigger.count >= trigger.targetValue {
		trigger.callback(trigger.total)
		trigger.count = 0
	}
}

// Total returns the number of ticks since creation or the last Reset.
func (trigger *OverflowTrigger) Total() int {
	trigger.mu.Lock()
	defer trigger.mu.Unlock()
	return trigger.total
}

func (trigger *OverflowTrigger) Reset() {
	trigger.mu.Lock()
	defer trigger.mu.Unlock()
	trigger.count = 0
	trigger.total = 0
}
