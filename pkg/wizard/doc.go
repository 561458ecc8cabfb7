// Package wizard implements the step-navigation state machine behind a
// multi-step form: a current/previous step index pair, a per-step draft of
// input values, the accumulated values collected so far, and a submitted
// flag. Advancing is gated by validation; retreating never is. Rendering is
// left to collaborators in pkg/renderers.
package wizard
