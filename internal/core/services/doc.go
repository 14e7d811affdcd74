// Package services implements the driving port interfaces.
// Services contain the core document lifecycle logic and orchestrate
// calls to driven ports (container, view resolver, stores).
//
// Services never hold a lock while calling a driven port, a content hook
// or an observer.
package services
