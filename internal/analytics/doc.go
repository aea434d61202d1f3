// Package analytics derives the dashboard and analytics rollups from
// expense, subscription and loan collections.
//
// Every function is synchronous and pure. The current time is always passed
// in, and the profile is an explicit argument wherever currency or budget is
// needed.
package analytics
