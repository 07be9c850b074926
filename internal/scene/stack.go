package scene

import (
	"fmt"
	"log"
)

// Stack owns the live scenes. Only the top one is updated and drawn.
type Stack struct {
	scenes []Scene
	env    Env
}

// NewStack returns a stack holding a freshly built scene of type first.
func NewStack(first Type, env Env) (*Stack, error) {
	s := &Stack{env: env}
	sc, err := New(first, env)
	if err != nil {
		return nil, err
	}
	s.Push(sc)
	return s, nil
}

func (s *Stack) Push(sc Scene) {
	s.scenes = append(s.scenes, sc)
}

// Pop removes the top scene. The last scene is never removed; Pop reports
// whether it did anything.
func (s *Stack) Pop() bool {
	if len(s.scenes) <= 1 {
		log.Printf("scene: refusing to pop the last scene")
		return false
	}
	s.scenes[len(s.scenes)-1] = nil
	s.scenes = s.scenes[:len(s.scenes)-1]
	return true
}

// Top returns the live scene, or nil for an empty stack.
func (s *Stack) Top() Scene {
	if len(s.scenes) == 0 {
		return nil
	}
	return s.scenes[len(s.scenes)-1]
}

func (s *Stack) Len() int { return len(s.scenes) }

// Apply carries out a request from the top scene. It returns false when
// the request asks the engine to stop.
func (s *Stack) Apply(r Request) (bool, error) {
	switch r.Kind {
	case RequestNone:
	case RequestPush:
		sc, err := New(r.Target, s.env)
		if err != nil {
			return true, fmt.Errorf("push %v: %w", r.Target, err)
		}
		s.Push(sc)
		log.Printf("scene: pushed %v (depth %d)", r.Target, s.Len())
	case RequestPop:
		if s.Pop() {
			log.Printf("scene: popped to %v (depth %d)", s.Top().Type(), s.Len())
		}
	case RequestQuit:
		log.Printf("scene: quit requested")
		return false, nil
	default:
		log.Printf("scene: ignoring unknown request %d", r.Kind)
	}
	return true, nil
}
