// Package window implements the rolling sample window shared by the poller,
// the history loader and HTTP readers.
//
// Each entry stores temperature, humidity and label together, so the three
// columns handed out by Snapshot always have the same length. All access goes
// through one RWMutex: writers are exclusive, readers may overlap.
package window
