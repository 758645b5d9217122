// Package observe defines the events a bulletin run emits at each state
// transition and the observers that consume them.
//
// Components never log directly; they emit an Event and the observer decides
// what to do with it. LogObserver turns events into log lines and metrics,
// Recorder keeps them in memory for tests.
package observe
