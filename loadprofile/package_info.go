// Package loadprofile generates steady traffic against the regions endpoint: a number of
// simulated users, started at a fixed rate, each repeatedly picking a weighted request and
// pausing for a random think time. It measures latency and failures; it does not judge them.
package loadprofile
