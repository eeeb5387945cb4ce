// Package handlers provides HTTP handlers for the activities API.
//
// Each handler is in its own file and implements http.Handler.
// Handlers use interfaces to access the activity registry, avoiding
// circular imports and keeping them easy to test.
package handlers

import "github.com/mergington/activities/registry"

// ActivityLister provides a snapshot of all activities.
type ActivityLister interface {
	List() map[string]registry.Activity
}

// Enroller adds a student to an activity's participant list.
type Enroller interface {
	Signup(activity, email string) error
}

// Unregisterer removes a student from an activity's participant list.
type Unregisterer interface {
	Unregister(activity, email string) error
}
