// Package state provides a lightweight FSM/session manager for multi-step
// conversations, such as the admin payment-detail update dialog.
package state
