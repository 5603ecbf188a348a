package network

import (
	"fmt"
	"sync"
)

// Stack owns a platform network stack. Each Startup has to be paired with
// exactly one Cleanup.
type Stack struct {
	mutex sync.Mutex
	refs  int
}

// Startup initializes the stack.
func (s *Stack) Startup() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := platformStartup(); err != nil {
		return fmt.Errorf("cannot start network stack: %w", err)
	}

	s.refs++

	return nil
}

// Cleanup releases the stack. Calling it more times than Startup is an
// error and has no effect on the platform.
func (s *Stack) Cleanup() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.refs == 0 {
		return ErrStackNotStarted
	}

	s.refs--

	if err := platformCleanup(); err != nil {
		return fmt.Errorf("cannot cleanup network stack: %w", err)
	}

	return nil
}

// Active tells if stack has unreleased startups.
func (s *Stack) Active() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.refs > 0
}

// NewStack returns a new stack owner. Nothing is initialized until
// Startup is called.
func NewStack() *Stack {
	return &Stack{}
}
