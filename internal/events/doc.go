// Package events carries the change notifications the library publishes
// after every successful mutation.
//
// Observers such as the snapshot saver register an EventHandler with an
// emitter, optionally filtered by EventType, and receive a LibraryEvent
// naming the change and the stats right after it. The library does not
// know who is listening.
package events
