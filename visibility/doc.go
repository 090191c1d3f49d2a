// Package visibility abstracts the host environment's page-visibility
// signal.
//
// The stream client suspends its connection while the host page is
// hidden and resumes when it becomes visible again. Hosts provide the
// actual signal by implementing Signal; Static covers headless hosts
// with no visibility concept, and Simulated drives transitions in tests.
package visibility
