package tracker

import "log"

// Logger logs the reward of each iteration as it is tracked
type Logger struct {
	logger *log.Logger
}

// NewLogger returns a new Logger Tracker which logs to l
func NewLogger(l *log.Logger) *Logger {
	return &Logger{l}
}

// Track logs the reward of an iteration
func (l *Logger) Track(iteration int, reward float64) {
	l.logger.Printf("Step: %v Reward: %v", iteration, reward)
}

// Save implements the Tracker interface, there is nothing to save
func (l *Logger) Save() error {
	return nil
}
