// Package orderbook holds the pure matching domain: orders, FIFO price
// levels, sorted price ladders and the per-instrument book. It performs
// no I/O and does no locking; the service layer owns concurrency.
package orderbook
