package recordstore

import "errors"

// ErrInjectedFault is returned by FailOn injectors.
var ErrInjectedFault = errors.New("injected fault")

// Store operations seen by a FaultInjector.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpSave   = "save"
	OpLoad   = "load"
)

// FaultInjector is consulted before adds, updates and file operations.
// A non-nil error aborts the operation before it changes anything.
type FaultInjector func(store, op string) error

// WithFaultInjector installs a FaultInjector on the store.
func WithFaultInjector(fi FaultInjector) Option {
	return func(o *options) { o.fault = fi }
}

// FailOn returns an injector that fails op on the named store.
func FailOn(store, op string) FaultInjector {
	return func(s, o string) error {
		if s == store && o == op {
			return ErrInjectedFault
		}
		return nil
	}
}

func (s *Store[T]) inject(op string) error {
	if s.fault == nil {
		return nil
	}
	return s.fault(s.name, op)
}
