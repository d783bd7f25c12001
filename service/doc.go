// Package service is the concurrency envelope around the matching domain:
// the Exchange owns the instrument registry and the global order map,
// accepts FIX sessions over TCP, and serializes every book mutation behind
// a single readers-writer lock.
package service
