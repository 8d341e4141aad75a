// Package state holds the application state the engine binds to the element
// tree. Fields are explicit observable properties: a plain Value, or an
// Accessor whose get/set bridge to an element or directive controller.
// Redefining a field releases the property it replaces, and Remove only
// deletes a field while the caller's property is still the one installed.
package state
